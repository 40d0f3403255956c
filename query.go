package darknet

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Query the loaded network and metadata to get the input dimensions, class
// names and record layout in text/human readable format
func (n *Network) Query(w io.Writer, meta *Metadata) error {

	if n.net == nil {
		return ErrClosed
	}

	fmt.Fprintf(w, "Network Input: %dx%d\n", n.Width(), n.Height())

	if meta != nil {
		fmt.Fprintf(w, "Classes: %d\n", meta.Classes)

		for i, name := range meta.Names {
			fmt.Fprintf(w, "  %d: %s\n", i, name)
		}
	}

	if err := ValidateLayout(); err != nil {
		return errors.Wrap(err, "error validating record layout")
	}

	fmt.Fprintf(w, "Record layout:\n")
	writeLayout(w)

	return nil
}
