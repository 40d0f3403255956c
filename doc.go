/*
go-darknet provides Go language bindings for the darknet C API.  It loads YOLO
networks from darknet config and weights files, runs them on images through
libdarknet.so and returns detections as plain Go values.

The C records the bindings read are declared in darknet_api.h and must match
the library build being linked against, call ValidateLayout() to check them.
Buffers returned by the library are wrapped in types with a Free() method
which is safe to call more than once.

Post processing (NMS, ranking and box conversion) lives in the postprocess
package, drawing in the render package and directory processing in the batch
package.

See example code and usage in the examples subdirectory.
*/
package darknet
