package postprocess

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrClassCount is returned when a detection's probability vector length does
// not match the number of class names of the dataset
var ErrClassCount = errors.New("probability vector length does not match class count")

// Extract flattens the per class probabilities of the detections into ranked
// results.  A result is emitted for every (detection, class) pair with a
// probability greater than zero and the results are sorted by descending
// confidence.  The order of results with equal confidence is not defined.
func Extract(dets []Detection, names []string) ([]RankedResult, error) {

	classes := len(names)
	results := make([]RankedResult, 0)

	for j, det := range dets {

		if len(det.Prob) != classes {
			return nil, errors.Wrapf(ErrClassCount, "detection %d has %d probabilities, want %d",
				j, len(det.Prob), classes)
		}

		for i := 0; i < classes; i++ {
			if det.Prob[i] > 0 {
				results = append(results, RankedResult{
					Label:      names[i],
					Class:      i,
					Confidence: det.Prob[i],
					Box:        det.Box,
				})
			}
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Confidence > results[b].Confidence
	})

	return results, nil
}
