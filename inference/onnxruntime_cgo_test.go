//go:build cgo && onnxruntime

package inference_test

import (
	"math/rand/v2"
	"testing"

	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/config"
	"github.com/go-magika/magika/inference"
)

func TestONNXRuntimeBackend(t *testing.T) {
	const (
		assetsDir = "../assets"
		modelName = "standard_v2_1"
	)

	cat, err := catalog.Load(assetsDir)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Read(assetsDir, modelName, cat)
	if err != nil {
		t.Fatal(err)
	}

	backend, err := inference.NewONNXRuntimeBackend(config.ModelPath(assetsDir, modelName), len(cfg.TargetLabelsSpace))
	if err != nil {
		t.Fatalf("NewONNXRuntimeBackend: %v", err)
	}

	features := make([]int32, cfg.FeatureLength())
	for i := range features {
		features[i] = rand.Int32()
	}

	scores, err := backend.Run(features)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n, m := len(scores), len(cfg.TargetLabelsSpace); n != m {
		t.Fatalf("unexpected scores len: got %d, want %d", n, m)
	}
}
