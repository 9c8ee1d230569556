package calendar

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/apperrors"
)

func TestWorkingDays_AutumnMonths2025(t *testing.T) {
	for month := 9; month <= 12; month++ {
		t.Run(MonthName(month), func(t *testing.T) {
			days, err := WorkingDays(2025, month)
			require.NoError(t, err)
			require.NotEmpty(t, days)

			parsed := make([]time.Time, 0, len(days))
			seen := map[string]bool{}
			for _, day := range days {
				d, err := time.Parse(DateLayout, day)
				require.NoError(t, err)
				assert.NotEqual(t, time.Saturday, d.Weekday(), day)
				assert.NotEqual(t, time.Sunday, d.Weekday(), day)
				assert.Equal(t, time.Month(month), d.Month(), day)
				assert.False(t, seen[day], "duplicate %s", day)
				seen[day] = true
				parsed = append(parsed, d)
			}

			assert.True(t, sort.SliceIsSorted(parsed, func(i, j int) bool {
				return parsed[i].Before(parsed[j])
			}))

			// Каждый будний день месяца присутствует ровно один раз
			first := time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			weekdays := 0
			for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
				if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
					weekdays++
					assert.True(t, seen[d.Format(DateLayout)], d.Format(DateLayout))
				}
			}
			assert.Len(t, days, weekdays)
		})
	}
}

func TestWorkingDays_KnownCounts(t *testing.T) {
	days, err := WorkingDays(2025, 9)
	require.NoError(t, err)
	assert.Len(t, days, 22)
	assert.Equal(t, "01.09.2025", days[0])
	assert.Equal(t, "30.09.2025", days[len(days)-1])

	december, err := WorkingDays(2025, 12)
	require.NoError(t, err)
	assert.Equal(t, "31.12.2025", december[len(december)-1])

	february, err := WorkingDays(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "29.02.2024", february[len(february)-1])
}

func TestWorkingDays_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := WorkingDays(2025, month)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}

	_, err := WorkingDays(0, 5)
	assert.True(t, apperrors.IsValidation(err))
}

func TestWorkingDaysBetween(t *testing.T) {
	from := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC) // пятница
	to := time.Date(2025, 9, 8, 15, 30, 0, 0, time.UTC) // понедельник, время игнорируется

	assert.Equal(t, []string{"05.09.2025", "08.09.2025"}, WorkingDaysBetween(from, to))
	assert.Empty(t, WorkingDaysBetween(to, from))

	weekend := WorkingDaysBetween(
		time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
	)
	assert.Empty(t, weekend)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"01.09.2025", "2025-09-01", true},
		{" 15.10.2025 ", "2025-10-15", true},
		{"2025-11-03", "2025-11-03", true},
		{"03/12/2025", "2025-12-03", true},
		{"ФИО", "", false},
		{"", "", false},
		{"32.01.2025", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "сентября", MonthNameGenitive(9))
	assert.Equal(t, "декабрь", MonthName(12))
	assert.Equal(t, "неизвестный", MonthName(13))
	assert.Equal(t, "неизвестного", MonthNameGenitive(0))
}
