package darknet

import "github.com/pkg/errors"

var (
	// ErrLayoutMismatch is returned when the Go mirror records do not match
	// the C records of the library
	ErrLayoutMismatch = errors.New("record layout does not match libdarknet")
	// ErrNetworkLoad is returned when the network config or weights can not
	// be loaded
	ErrNetworkLoad = errors.New("error loading network")
	// ErrMetadataLoad is returned when the data file or class names can not
	// be loaded
	ErrMetadataLoad = errors.New("error loading metadata")
	// ErrImageLoad is returned when an image file can not be read or decoded
	ErrImageLoad = errors.New("error loading image")
	// ErrPredict is returned when running the network fails
	ErrPredict = errors.New("error running network")
	// ErrClosed is returned when using a network after Close
	ErrClosed = errors.New("network is closed")
)
