package darknet

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// defaultNamesFile is the names file darknet falls back to when a data file
// has no names entry
const defaultNamesFile = "data/names.list"

// DataFile holds the entries of a darknet .data file
type DataFile struct {
	// Classes is the declared class count
	Classes int
	// Names is the path of the class names file
	Names string
	// Options holds every key = value entry of the file
	Options map[string]string
}

// ReadDataFile parses a darknet .data file.  Each line is a key = value pair,
// lines starting with #, ; or empty lines are ignored.
func ReadDataFile(file string) (*DataFile, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, errors.Wrap(err, "error opening data file")
	}

	defer f.Close()

	opts := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		key, val, ok := strings.Cut(line, "=")

		if !ok {
			return nil, errors.Errorf("%s line %d: expected key = value, got %q",
				file, lineNo, line)
		}

		opts[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading data file")
	}

	df := &DataFile{
		Names:   defaultNamesFile,
		Options: opts,
	}

	if v, ok := opts["names"]; ok {
		df.Names = v
	}

	v, ok := opts["classes"]

	if !ok {
		return nil, errors.Errorf("%s has no classes entry", file)
	}

	df.Classes, err = parseCount(v)

	if err != nil {
		return nil, errors.Wrapf(err, "%s classes entry %q", file, v)
	}

	return df, nil
}

// parseCount parses a decimal entry.  Leading zeros are dropped so "08" reads
// as 8 the way darknet reads it, not as an invalid octal number.
func parseCount(v string) (int, error) {

	v = strings.TrimLeft(strings.TrimSpace(v), "0")

	if v == "" {
		return 0, nil
	}

	return cast.ToIntE(v)
}

// LoadLabels reads class names from the given text file, one label per line.
// Blank lines are kept as empty labels since darknet counts them as classes.
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, errors.Wrap(err, "error opening names file")
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var labels []string

	// read and trim each line
	for scanner.Scan() {
		labels = append(labels, strings.TrimSpace(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading names file")
	}

	return labels, nil
}

// checkDataFile makes sure get_metadata can read the data file and its names
// file, darknet exits the process when either is missing
func checkDataFile(file string) (*DataFile, error) {

	df, err := ReadDataFile(file)

	if err != nil {
		return nil, err
	}

	if df.Classes <= 0 {
		return nil, errors.Errorf("%s declares %d classes", file, df.Classes)
	}

	labels, err := LoadLabels(df.Names)

	if err != nil {
		return nil, errors.Wrapf(err, "names file of %s", file)
	}

	if len(labels) < df.Classes {
		return nil, errors.Errorf("%s declares %d classes but %s has %d names",
			file, df.Classes, df.Names, len(labels))
	}

	return df, nil
}
