package inference

import (
	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/errkind"
)

// Prediction is the result of running a Backend against a feature
// vector: the argmax label, its score, and the full per-label score map.
type Prediction struct {
	Label     catalog.Label
	Score     float32
	ScoresMap map[catalog.Label]float32
}

// Engine turns a Backend's raw score vector into a Prediction aligned
// with a target label space. It holds no mutable state beyond the
// Backend itself, so it is safe to share across concurrent requests
// once constructed.
type Engine struct {
	backend     Backend
	targetSpace []catalog.Label
}

// NewEngine pairs a Backend with the target label space its output
// dimension must match.
func NewEngine(backend Backend, targetSpace []catalog.Label) *Engine {
	return &Engine{backend: backend, targetSpace: targetSpace}
}

// Predict runs the backend on features and resolves the result against
// the target label space. Ties are broken by earliest index.
func (e *Engine) Predict(features []int32) (Prediction, error) {
	scores, err := e.backend.Run(features)
	if err != nil {
		return Prediction{}, errkind.Newf(errkind.ModelRuntimeError, err, "run inference backend")
	}
	if len(scores) != len(e.targetSpace) {
		return Prediction{}, errkind.Newf(errkind.ModelConfigMismatch, nil,
			"backend returned %d scores, want %d (len(target_labels_space))", len(scores), len(e.targetSpace))
	}
	if len(scores) == 0 {
		return Prediction{}, errkind.Newf(errkind.ModelRuntimeError, nil, "backend returned an empty score vector")
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	scoresMap := make(map[catalog.Label]float32, len(scores))
	for i, label := range e.targetSpace {
		scoresMap[label] = scores[i]
	}

	return Prediction{
		Label:     e.targetSpace[best],
		Score:     scores[best],
		ScoresMap: scoresMap,
	}, nil
}
