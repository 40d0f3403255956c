package postprocess

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// NMSMode selects the score detections are ranked by during Non-Maximum
// Suppression
type NMSMode int

const (
	// NMSByObject ranks detections by their objectness score
	NMSByObject NMSMode = iota
	// NMSBySortedClass ranks detections by the probability of the class being
	// suppressed
	NMSBySortedClass
)

// String returns the name used for the mode in configuration
func (m NMSMode) String() string {
	switch m {
	case NMSByObject:
		return "obj"
	case NMSBySortedClass:
		return "sort"
	default:
		return "unknown"
	}
}

// ParseNMSMode returns the NMSMode for the given name, either "obj" or "sort"
func ParseNMSMode(name string) (NMSMode, error) {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "obj", "object":
		return NMSByObject, nil
	case "sort", "sorted", "class":
		return NMSBySortedClass, nil
	}

	return NMSByObject, errors.Errorf("unknown NMS mode %q", name)
}

// NMS runs Non-Maximum Suppression over the detections of a single image in
// place.  For each class the detections with a non zero probability are
// ranked by descending score and swept in order, every later detection whose
// IoU with a retained one is greater than thresh has its probability for that
// class set to zero.  The order of dets is left unchanged.
//
// A thresh <= 0 disables suppression and a thresh >= 1 never suppresses.
func NMS(dets []Detection, classes int, thresh float32, mode NMSMode) {

	if thresh <= 0 || len(dets) < 2 {
		return
	}

	order := make([]int, 0, len(dets))

	for k := 0; k < classes; k++ {

		order = order[:0]

		for i := range dets {
			if k < len(dets[i].Prob) && dets[i].Prob[k] > 0 {
				order = append(order, i)
			}
		}

		if len(order) < 2 {
			continue
		}

		score := func(i int) float32 {
			if mode == NMSBySortedClass {
				return dets[i].Prob[k]
			}
			return dets[i].Objectness
		}

		sort.SliceStable(order, func(a, b int) bool {
			return score(order[a]) > score(order[b])
		})

		for a := 0; a < len(order); a++ {

			i := order[a]

			if dets[i].Prob[k] == 0 {
				continue
			}

			for b := a + 1; b < len(order); b++ {

				j := order[b]

				if dets[j].Prob[k] == 0 {
					continue
				}

				if dets[i].Box.IoU(dets[j].Box) > thresh {
					dets[j].Prob[k] = 0
				}
			}
		}
	}
}
