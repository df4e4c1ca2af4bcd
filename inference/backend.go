// Package inference wraps the neural evaluator: given a feature vector
// it produces a score vector aligned with the configured target-label
// space. The package is evaluator-agnostic -- Backend is the narrow
// interface a concrete runtime (ONNX Runtime via cgo, or a test double)
// must satisfy.
package inference

// Backend runs inference on a flattened feature vector and returns one
// score per label in the target label space, in target-label-space
// order. Implementations must be safe for concurrent use after
// construction.
type Backend interface {
	// Run returns the result of the inference on the given features.
	Run(features []int32) ([]float32, error)
}
