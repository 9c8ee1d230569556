package normalization

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"gradebook/normalization/algorithms"
)

// DefaultThreshold порог схожести по умолчанию
const DefaultThreshold = 0.6

// Веса совпадений отдельных частей ФИО
const (
	initialScore = 0.85
	prefixScore  = 0.92
)

// RosterSource источник групп и списков студентов
type RosterSource interface {
	Groups() ([]string, error)
	Roster(group string) []string
}

// Match найденный студент
type Match struct {
	Group    string
	FullName string
	Score    float64
}

// StudentMatcher нечеткий поиск студентов по ФИО во всех группах
type StudentMatcher struct {
	source RosterSource
	logger *slog.Logger
}

// NewStudentMatcher создает поисковик поверх источника списков
func NewStudentMatcher(source RosterSource, logger *slog.Logger) *StudentMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentMatcher{source: source, logger: logger}
}

// Search возвращает студентов со схожестью не ниже порога, по убыванию схожести
// Для короткого запроса из одного слова порог снижается, см. EffectiveThreshold
func (m *StudentMatcher) Search(query string, threshold float64) ([]Match, error) {
	if len(algorithms.TokenizeName(query)) == 0 {
		return nil, nil
	}

	groups, err := m.source.Groups()
	if err != nil {
		return nil, err
	}

	effective := EffectiveThreshold(query, threshold)
	var matches []Match
	for _, group := range groups {
		for _, student := range m.source.Roster(group) {
			score := NameMatchScore(query, student)
			if score >= effective {
				matches = append(matches, Match{Group: group, FullName: student, Score: score})
			}
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	m.logger.Debug("Student search completed",
		"query", query,
		"threshold", effective,
		"matches", len(matches))
	return matches, nil
}

// EffectiveThreshold порог с поправкой на короткий запрос:
// одно слово длиной не более 3 символов снижает порог на 0.1, но не ниже 0.5
func EffectiveThreshold(query string, threshold float64) float64 {
	tokens := algorithms.TokenizeName(query)
	if len(tokens) == 1 && utf8.RuneCountInString(tokens[0]) <= 3 {
		return max(0.5, threshold-0.1)
	}
	return threshold
}

// NameMatchScore оценка совпадения запроса с ФИО (0-1)
// Берется максимум из схожести целых строк и средней лучшей схожести слов запроса
func NameMatchScore(query, candidate string) float64 {
	queryTokens := algorithms.TokenizeName(query)
	candidateTokens := algorithms.TokenizeName(candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	fullScore := algorithms.SimilarityRatio(
		strings.Join(queryTokens, " "),
		strings.Join(candidateTokens, " "),
	)

	var sum float64
	for _, q := range queryTokens {
		sum += bestTokenScore(q, candidateTokens)
	}
	tokenAvg := sum / float64(len(queryTokens))

	return max(tokenAvg, fullScore)
}

// bestTokenScore лучшая схожесть слова запроса с одним из слов ФИО
func bestTokenScore(q string, candidateTokens []string) float64 {
	qLen := utf8.RuneCountInString(q)
	best := 0.0

	if qLen == 1 {
		initial, _ := utf8.DecodeRuneInString(q)
		for _, c := range candidateTokens {
			if first, _ := utf8.DecodeRuneInString(c); first == initial {
				best = max(best, initialScore)
			}
		}
	}

	for _, c := range candidateTokens {
		if qLen >= 2 && strings.HasPrefix(c, q) {
			best = max(best, prefixScore)
		}
		best = max(best, algorithms.SimilarityRatio(q, c))
	}
	return best
}
