package generator

// AbsenceProbability вероятность пропуска занятия
const AbsenceProbability = 0.15

// profile тип успеваемости студента
type profile int

const (
	profileOnlyFive profile = iota
	profileGoodAndExcellent
	profileWeak
	profileMixed
)

// Доли профилей, остальные студенты получают смешанные оценки
const (
	probOnlyFive         = 0.15
	probGoodAndExcellent = 0.35
	probWeak             = 0.20
)

// pickProfile выбирает профиль по случайному числу из [0, 1)
func pickProfile(r float64) profile {
	switch {
	case r < probOnlyFive:
		return profileOnlyFive
	case r < probOnlyFive+probGoodAndExcellent:
		return profileGoodAndExcellent
	case r < probOnlyFive+probGoodAndExcellent+probWeak:
		return profileWeak
	default:
		return profileMixed
	}
}

// grade случайная оценка для профиля
func (g *Generator) grade(p profile) int {
	switch p {
	case profileOnlyFive:
		return 5
	case profileGoodAndExcellent:
		if g.faker.Bool() {
			return 5
		}
		return 4
	case profileWeak:
		if g.faker.Bool() {
			return 3
		}
		return 2
	default:
		return g.faker.Number(2, 5)
	}
}
