package stats

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when ranking a column with no values
var ErrEmptyInput = errors.New("most common value of empty input")

// Count is a distinct value and its number of occurrences
type Count[T comparable] struct {
	Value T   `json:"value"`
	Count int `json:"count"`
}

// ValueCounts counts each distinct value. The result is sorted by count,
// highest first; equal counts keep the order values first appeared in.
func ValueCounts[T comparable](values []T) []Count[T] {
	index := make(map[T]int)
	var counts []Count[T]
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count[T]{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MostCommon returns the most frequent value followed by every value tied
// with it, in first-appearance order.
func MostCommon[T comparable](values []T) ([]T, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	counts := ValueCounts(values)
	result := []T{counts[0].Value}
	for i := 1; i < len(counts); i++ {
		if counts[i].Count != counts[i-1].Count {
			break
		}
		result = append(result, counts[i].Value)
	}
	return result, nil
}
