package inference

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-magika/magika/catalog"
)

type fakeBackend struct {
	scores []float32
	err    error
}

func (f fakeBackend) Run([]int32) ([]float32, error) { return f.scores, f.err }

func TestPredictArgmaxAndScoresMap(t *testing.T) {
	space := []catalog.Label{"python", "javascript", "markdown"}
	e := NewEngine(fakeBackend{scores: []float32{0.1, 0.7, 0.2}}, space)

	pred, err := e.Predict([]int32{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, catalog.Label("javascript"), pred.Label)
	require.InDelta(t, float32(0.7), pred.Score, 0)
	require.Equal(t, map[catalog.Label]float32{"python": 0.1, "javascript": 0.7, "markdown": 0.2}, pred.ScoresMap)
}

func TestPredictTiesBreakByEarliestIndex(t *testing.T) {
	space := []catalog.Label{"a", "b", "c"}
	e := NewEngine(fakeBackend{scores: []float32{0.5, 0.5, 0.1}}, space)

	pred, err := e.Predict(nil)
	require.NoError(t, err)
	require.Equal(t, catalog.Label("a"), pred.Label)
}

func TestPredictDimensionMismatch(t *testing.T) {
	space := []catalog.Label{"a", "b", "c"}
	e := NewEngine(fakeBackend{scores: []float32{0.5, 0.5}}, space)

	_, err := e.Predict(nil)
	require.Error(t, err)
}

func TestPredictBackendError(t *testing.T) {
	space := []catalog.Label{"a"}
	e := NewEngine(fakeBackend{err: errBoom{}}, space)

	_, err := e.Predict(nil)
	require.Error(t, err)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
