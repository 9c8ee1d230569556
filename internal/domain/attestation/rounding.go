package attestation

import (
	"github.com/shopspring/decimal"
)

// HoursPerLesson академических часов в одном занятии
const HoursPerLesson = 2

var hundred = decimal.NewFromInt(100)

// meanDecimal среднее значение оценок; для пустого списка ноль
func meanDecimal(grades []float64) decimal.Decimal {
	if len(grades) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, g := range grades {
		sum = sum.Add(decimal.NewFromFloat(g))
	}
	return sum.Div(decimal.NewFromInt(int64(len(grades))))
}

// AverageGrade средний балл, округленный до целой оценки
// Половина округляется вверх (от нуля): [4, 5] дает 5, [2, 3] дает 3
func AverageGrade(grades []float64) int {
	if len(grades) == 0 {
		return 0
	}
	return int(meanDecimal(grades).Round(0).IntPart())
}

// MeanGrade средний балл, округленный до places знаков после запятой
func MeanGrade(grades []float64, places int32) float64 {
	f, _ := meanDecimal(grades).Round(places).Float64()
	return f
}

// round1 округляет до одного знака после запятой (половина вверх)
func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}

// percentOf вычисляет 100 * part / total с округлением до десятых
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(part)).Div(decimal.NewFromInt(int64(total)))
	return round1(hundred.Mul(ratio))
}
