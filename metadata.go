package darknet

/*
#cgo CFLAGS: -I${SRCDIR}
#include "darknet_api.h"
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

// Metadata holds the class names of a dataset
type Metadata struct {
	// Classes is the number of classes the network was trained on
	Classes int
	// Names are the class labels indexed by class number
	Names []string
}

// LoadMetadata wraps C.get_metadata and reads the class count and names from
// a darknet .data file
func LoadMetadata(file string) (*Metadata, error) {

	if err := checkFile(file); err != nil {
		return nil, errors.Wrapf(ErrMetadataLoad, "%v", err)
	}

	if _, err := checkDataFile(file); err != nil {
		return nil, errors.Wrapf(ErrMetadataLoad, "%v", err)
	}

	cFile := C.CString(file)
	defer C.free(unsafe.Pointer(cFile))

	meta := C.get_metadata(cFile)

	if meta.classes <= 0 {
		return nil, errors.Wrapf(ErrMetadataLoad, "no classes defined in %s", file)
	}

	if meta.names == nil {
		return nil, errors.Wrapf(ErrMetadataLoad, "no class names loaded from %s", file)
	}

	n := int(meta.classes)
	names := make([]string, n)

	for i, cName := range unsafe.Slice(meta.names, n) {
		if cName == nil {
			return nil, errors.Wrapf(ErrMetadataLoad, "class %d has no name in %s", i, file)
		}

		names[i] = C.GoString(cName)
	}

	return &Metadata{
		Classes: n,
		Names:   names,
	}, nil
}
