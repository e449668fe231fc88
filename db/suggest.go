// Package db answers "did you mean" lookups against the enum lists.
package db

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/bifrost-platform/asset-info-v2/models"
)

const maxMatches = 10

// minPrefix is the shortest input prefix tried when the full input matches
// nothing.
const minPrefix = 2

func getMatches(input string, source FuzzySource) ([]models.EnumInfo, []int) {
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	result := []models.EnumInfo{}
	scores := []int{}
	for i := 0; i < maxMatches; i++ {
		if i < len(matches) {
			result = append(result, source[matches[i].Index])
			scores = append(scores, matches[i].Score)
		} else {
			break
		}
	}
	return result, scores
}

// Suggest returns the entries of list closest to input, best first. When
// the whole input matches nothing it is shortened from the end, so a typo
// in the last characters still finds its neighbours.
func Suggest(input string, list models.EnumInfoList) []models.EnumInfo {
	source := NewFuzzySource(list)
	for end := len(input); end >= minPrefix; end-- {
		matches, _ := getMatches(input[:end], source)
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// Lookup returns the best entry for input.
func Lookup(input string, list models.EnumInfoList) (models.EnumInfo, error) {
	matches := Suggest(input, list)
	if len(matches) == 0 {
		return models.EnumInfo{}, fmt.Errorf("No value is found with '%s'", input)
	}
	return matches[0], nil
}

// Hint renders up to n suggestions for a violation message, or "" when
// nothing is close.
func Hint(input string, list models.EnumInfoList, n int) string {
	matches := Suggest(input, list)
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > n {
		matches = matches[:n]
	}
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, fmt.Sprintf("%q", m.Value))
	}
	return "did you mean " + strings.Join(values, " or ") + "?"
}
