// Package batch runs object detection over every image of a directory and
// writes an annotated copy of each image to an output directory.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/swdee/go-darknet/postprocess"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned when the dataset path is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Detector runs object detection on a single image file
type Detector interface {
	Detect(file string) ([]postprocess.RankedResult, error)
}

// Annotator draws the record onto the src image and writes it to dst
type Annotator interface {
	Annotate(src, dst string, rec postprocess.OutputRecord) error
}

// Record is the result of processing one image
type Record struct {
	// Input is the path of the source image
	Input string
	// Output is the path the annotated image was written to
	Output string
	// Result holds the predicted classes, confidences and corner boxes
	Result postprocess.OutputRecord
	// Elapsed is the time spent on detection
	Elapsed time.Duration
}

// Report is returned from a batch run
type Report struct {
	Records []Record
	Summary Summary
}

// Driver processes image directories one image at a time.  It owns the
// counter used to name output files, which starts at zero and increases by
// one for every image written, across calls to Run.
type Driver struct {
	det     Detector
	ann     Annotator
	log     *zap.Logger
	counter int
}

// New returns a Driver.  A nil logger disables logging.
func New(det Detector, ann Annotator, log *zap.Logger) *Driver {

	if log == nil {
		log = zap.NewNop()
	}

	return &Driver{
		det: det,
		ann: ann,
		log: log,
	}
}

// Next returns the counter value the next output file will be named with
func (d *Driver) Next() int {
	return d.counter
}

// OutputName returns the output file name for the given counter value
func OutputName(counter int) string {
	return fmt.Sprintf("%d.jpg", counter)
}

// ListImages returns the paths of the regular files in dir sorted
// lexicographically by name
func ListImages(dir string) ([]string, error) {

	info, err := os.Stat(dir)

	if err != nil {
		return nil, errors.Wrap(err, "error reading dataset")
	}

	if !info.IsDir() {
		return nil, errors.Wrapf(ErrNotDirectory, "dataset %s", dir)
	}

	entries, err := os.ReadDir(dir)

	if err != nil {
		return nil, errors.Wrap(err, "error reading dataset")
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	files := make([]string, len(names))

	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}

	return files, nil
}

// Run detects objects in every image of the dataset directory in name order
// and writes the annotated images to the output directory as <counter>.jpg.
// Processing stops at the first error, the records of the images completed
// before it are returned with the error.
func (d *Driver) Run(dataset, output string) (Report, error) {

	var report Report

	files, err := ListImages(dataset)

	if err != nil {
		return report, err
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return report, errors.Wrap(err, "error creating output folder")
	}

	d.log.Info("processing dataset",
		zap.String("dataset", dataset),
		zap.String("output", output),
		zap.Int("images", len(files)),
		zap.Int("counter", d.counter),
	)

	elapsed := make([]time.Duration, 0, len(files))

	for i, file := range files {

		rec, err := d.process(file, output)

		if err != nil {
			report.Summary = Summarize(elapsed)
			return report, errors.Wrapf(err, "image %d %s", i, file)
		}

		report.Records = append(report.Records, rec)
		elapsed = append(elapsed, rec.Elapsed)
	}

	report.Summary = Summarize(elapsed)

	d.log.Info("dataset complete",
		zap.Int("images", report.Summary.Images),
		zap.Duration("mean", report.Summary.Mean),
		zap.Duration("stddev", report.Summary.StdDev),
		zap.Float64("fps", report.Summary.FPS()),
	)

	return report, nil
}

// process runs detection on a single file and writes the annotated output
func (d *Driver) process(file, output string) (Record, error) {

	start := time.Now()
	results, err := d.det.Detect(file)
	spent := time.Since(start)

	if err != nil {
		return Record{}, errors.Wrap(err, "detection failed")
	}

	rec := Record{
		Input:   file,
		Output:  filepath.Join(output, OutputName(d.counter)),
		Result:  postprocess.NewOutputRecord(results),
		Elapsed: spent,
	}

	if _, err := os.Stat(rec.Output); err == nil {
		d.log.Warn("overwriting existing output", zap.String("output", rec.Output))
	}

	if err := d.ann.Annotate(file, rec.Output, rec.Result); err != nil {
		return Record{}, errors.Wrap(err, "annotation failed")
	}

	d.counter++

	d.log.Info("processed image",
		zap.String("input", file),
		zap.String("output", rec.Output),
		zap.Int("detections", rec.Result.Len()),
		zap.Float64("fps", fps(spent)),
	)

	return rec, nil
}

// fps converts the time spent on one image to frames per second
func fps(d time.Duration) float64 {

	if d <= 0 {
		return 0
	}

	return 1 / d.Seconds()
}
