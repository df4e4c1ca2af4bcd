//go:build !(cgo && onnxruntime)

package inference

import "github.com/go-magika/magika/errkind"

// NewONNXRuntimeBackend fails descriptively when this module was built
// without cgo and the onnxruntime build tag. Unlike the teacher's
// non-cgo stub (which returned (nil, nil) and let a nil Backend reach
// Run and panic), this surfaces a ModelRuntimeError at construction
// time, consistent with spec.md §7's policy that configuration-shaped
// failures surface at construction rather than per request.
func NewONNXRuntimeBackend(modelPath string, outputSize int) (Backend, error) {
	return nil, errkind.Newf(errkind.ModelRuntimeError, nil,
		"onnx runtime backend unavailable: built without cgo and the onnxruntime build tag (model %q)", modelPath)
}
