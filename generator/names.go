package generator

// DefaultGroups группы первого курса
var DefaultGroups = []string{
	"ОДЛ-121", "ОДЛ-220(120)", "ОДЛ-316(216)", "ОДЛ-319(219)",
	"ТН-101", "ФК-201(101)", "Э-115", "Э-214(114)",
	"Э-313(213)", "ЭП-201(101)", "ПСА-301(201)", "ПСО-345(245)",
	"ЮР-148", "ЮР-149", "ЮР-246(146)", "ЮР-247(147)",
}

// Мужские фамилии; женская форма получается окончанием "а"
var surnames = []string{
	"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров",
	"Соколов", "Михайлов", "Новиков", "Федоров", "Морозов", "Волков",
	"Алексеев", "Лебедев", "Семенов", "Егоров", "Павлов", "Козлов",
	"Степанов", "Николаев", "Орлов", "Андреев", "Макаров", "Никитин",
	"Захаров", "Зайцев", "Соловьев", "Борисов", "Яковлев", "Григорьев",
}

var maleNames = []string{
	"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей",
	"Артем", "Илья", "Кирилл", "Михаил", "Никита", "Матвей",
	"Роман", "Егор", "Арсений", "Иван", "Денис", "Евгений",
	"Даниил", "Тимофей", "Владислав", "Игорь", "Павел", "Олег",
}

var femaleNames = []string{
	"Анастасия", "Мария", "Анна", "Виктория", "Екатерина", "Наталья",
	"Марина", "Полина", "Дарья", "Алиса", "Ксения", "Елена",
	"Софья", "Вероника", "Алена", "Ольга", "Юлия", "Татьяна",
	"Ирина", "Светлана", "Валерия", "Кристина", "Александра", "Ева",
}

// Отчества в мужской и женской форме
var patronymics = [][2]string{
	{"Александрович", "Александровна"}, {"Дмитриевич", "Дмитриевна"},
	{"Сергеевич", "Сергеевна"}, {"Андреевич", "Андреевна"},
	{"Алексеевич", "Алексеевна"}, {"Михайлович", "Михайловна"},
	{"Иванович", "Ивановна"}, {"Николаевич", "Николаевна"},
	{"Владимирович", "Владимировна"}, {"Петрович", "Петровна"},
	{"Викторович", "Викторовна"}, {"Олегович", "Олеговна"},
	{"Павлович", "Павловна"}, {"Юрьевич", "Юрьевна"},
	{"Евгеньевич", "Евгеньевна"}, {"Игоревич", "Игоревна"},
}
