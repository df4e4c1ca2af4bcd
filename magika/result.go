package magika

import (
	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/decision"
)

// Status is the outcome of an identification attempt.
type Status string

const (
	StatusOK              Status = "ok"
	StatusFileNotFound    Status = "file_not_found_error"
	StatusPermissionError Status = "permission_error"
	StatusUnknown         Status = "unknown"
)

// ContentTypeInfo is the wire representation of catalog.Info: the same
// metadata, but with Label included as a JSON field (the catalog keeps
// it out of its own JSON tag since it's redundant with the map key on
// disk).
type ContentTypeInfo struct {
	Label       catalog.Label `json:"label"`
	Description string        `json:"description"`
	Group       string        `json:"group"`
	MimeType    string        `json:"mime_type"`
	Extensions  []string      `json:"extensions"`
	IsText      bool          `json:"is_text"`
}

func toWire(info catalog.Info) ContentTypeInfo {
	return ContentTypeInfo{
		Label:       info.Label,
		Description: info.Description,
		Group:       info.Group,
		MimeType:    info.MimeType,
		Extensions:  info.Extensions,
		IsText:      info.IsText,
	}
}

// Prediction is the final, user-facing identification result for one
// input: the raw model output (dl) alongside the post-decision-logic
// output, the winning score, and why they differ (if they do).
type Prediction struct {
	Dl              ContentTypeInfo           `json:"dl"`
	Output          ContentTypeInfo           `json:"output"`
	Score           float32                   `json:"score"`
	OverwriteReason decision.Reason           `json:"overwrite_reason"`
	ScoresMap       map[catalog.Label]float32 `json:"scores_map,omitempty"`
}

// Result is the outcome of identifying one path or byte sequence.
type Result struct {
	Path       string      `json:"-"`
	Status     Status      `json:"-"`
	Prediction *Prediction `json:"-"`
}

// resultValue and wireResult implement the stable wire
// format from spec.md §6: {"path": ..., "result": {"status": ...,
// "value": {...}}}.
type resultValue struct {
	Status Status      `json:"status"`
	Value  *Prediction `json:"value,omitempty"`
}

type wireResult struct {
	Path   string      `json:"path"`
	Result resultValue `json:"result"`
}

// MarshalJSON renders Result in the stable wire format documented in
// spec.md §6, using goccy/go-json for encoding consistency with the
// rest of the load path.
func (r Result) MarshalJSON() ([]byte, error) {
	return jsonMarshal(wireResult{
		Path: r.Path,
		Result: resultValue{
			Status: r.Status,
			Value:  r.Prediction,
		},
	})
}
