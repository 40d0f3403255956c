package postprocess

import (
	"sort"

	"github.com/pkg/errors"
)

// Classification is the score of a single class for a classifier network
type Classification struct {
	Label string
	Class int
	Score float32
}

// RankClasses pairs each class score with its name and sorts them by
// descending score.  Every class is returned including zero scores.
func RankClasses(scores []float32, names []string) ([]Classification, error) {

	if len(scores) != len(names) {
		return nil, errors.Wrapf(ErrClassCount, "got %d scores for %d classes",
			len(scores), len(names))
	}

	res := make([]Classification, len(scores))

	for i, s := range scores {
		res[i] = Classification{
			Label: names[i],
			Class: i,
			Score: s,
		}
	}

	sort.SliceStable(res, func(a, b int) bool {
		return res[a].Score > res[b].Score
	})

	return res, nil
}

// Top returns the first n classifications, or all of them when fewer exist
func Top(res []Classification, n int) []Classification {

	if n < 0 || n > len(res) {
		return res
	}

	return res[:n]
}
