package batch

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary are the detection timing statistics of a batch run
type Summary struct {
	Images int
	Total  time.Duration
	Mean   time.Duration
	// StdDev is the sample standard deviation, zero for fewer than two images
	StdDev time.Duration
}

// Summarize calculates timing statistics from per image durations
func Summarize(elapsed []time.Duration) Summary {

	s := Summary{
		Images: len(elapsed),
	}

	if len(elapsed) == 0 {
		return s
	}

	secs := make([]float64, len(elapsed))

	for i, e := range elapsed {
		secs[i] = e.Seconds()
		s.Total += e
	}

	if len(secs) == 1 {
		s.Mean = elapsed[0]
		return s
	}

	mean, std := stat.MeanStdDev(secs, nil)
	s.Mean = seconds(mean)
	s.StdDev = seconds(std)

	return s
}

// FPS returns the average number of images detected per second
func (s Summary) FPS() float64 {
	return fps(s.Mean)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
