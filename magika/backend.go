package magika

import "github.com/go-magika/magika/inference"

// newONNXBackend loads the ONNX graph at modelPath through
// inference.NewONNXRuntimeBackend. newScanner calls it only when no
// WithBackend override was given; tests supply their backend through
// WithBackend instead.
func newONNXBackend(modelPath string, outputSize int) (inference.Backend, error) {
	return inference.NewONNXRuntimeBackend(modelPath, outputSize)
}
