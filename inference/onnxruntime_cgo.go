//go:build cgo && onnxruntime

package inference

// #cgo LDFLAGS: -lonnxruntime
// #include "onnxruntime_cgo.h"
import "C"

import (
	"fmt"

	"github.com/go-magika/magika/errkind"
)

// NewONNXRuntimeBackend returns a Backend that evaluates the given ONNX
// graph using the ONNX Runtime (https://onnxruntime.ai/) C API. Runtime
// telemetry collection is disabled on the session options before the
// session is created, per the no-telemetry requirement on InferenceEngine.
func NewONNXRuntimeBackend(modelPath string, outputSize int) (Backend, error) {
	rt := &onnxRuntimeBackend{
		api:        C.GetApiBase(),
		outputSize: outputSize,
	}
	if err := C.CreateSessionNoTelemetry(rt.api, C.CString(modelPath), &rt.session, &rt.memory); err != nil {
		msg := C.GoString(C.GetErrorMessage(err))
		return nil, errkind.Newf(errkind.ModelRuntimeError, nil, "create onnx runtime session for %q: %s", modelPath, msg)
	}
	return rt, nil
}

// onnxRuntimeBackend implements Backend via cgo calls into the ONNX
// Runtime C API. The underlying session is safe to call Run on
// concurrently: ONNX Runtime sessions support concurrent Run calls once
// created, and this type holds no other mutable state.
type onnxRuntimeBackend struct {
	api        *C.OrtApi
	session    *C.OrtSession
	memory     *C.OrtMemoryInfo
	outputSize int
}

func (rt *onnxRuntimeBackend) Run(features []int32) ([]float32, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("run: empty feature vector")
	}
	target := make([]float32, rt.outputSize)
	if err := C.Run(rt.api, rt.session, rt.memory,
		(*C.int32_t)(&features[0]), C.int64_t(len(features)),
		(*C.float)(&target[0]), C.int64_t(len(target))); err != nil {
		return nil, errkind.Newf(errkind.ModelRuntimeError, nil, "run: %s", C.GoString(C.GetErrorMessage(err)))
	}
	return target, nil
}
