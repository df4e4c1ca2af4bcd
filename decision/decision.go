// Package decision implements the post-processing step that turns a raw
// model prediction into a final user-facing label: overwrite-map
// remapping, per-label confidence thresholds, and the textual-vs-binary
// low-confidence fallback.
package decision

import (
	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/config"
	"github.com/go-magika/magika/inference"
)

// Reason documents why the output label differs from the model's raw
// argmax label.
type Reason string

const (
	// None means the output label is exactly the model's prediction.
	None Reason = "none"
	// OverwriteMap means a static label->label rewrite applied,
	// independent of confidence.
	OverwriteMap Reason = "overwrite_map"
	// LowConfidence means the prediction's score fell below its
	// threshold and was replaced with a textual/binary fallback.
	LowConfidence Reason = "low_confidence"
)

// Decide applies spec.md §4.5's precedence rules to prediction:
//
//  1. The overwrite map is consulted first, against the model's
//     original predicted label -- this is what lets internal-only
//     labels (e.g. "randomtxt") get rewritten unconditionally, even
//     for a high-confidence prediction.
//  2. The threshold lookup also uses the original predicted label, not
//     the overwritten one.
//  3. If the score clears the threshold, the (possibly overwritten)
//     label is returned as-is. Otherwise the low-confidence fallback
//     (txt/unknown, based on the catalog's is_text for the overwritten
//     label) replaces it, and Reason becomes LowConfidence only if that
//     actually changes the label -- if the fallback and the overwritten
//     label already coincide, the Reason from step 1 is kept.
func Decide(prediction inference.Prediction, cfg config.Config, cat *catalog.Catalog) (catalog.Label, Reason, error) {
	predicted := prediction.Label

	mapped := predicted
	reason := None
	if to, ok := cfg.Overwrite(predicted); ok {
		mapped = to
		reason = OverwriteMap
	}

	threshold := cfg.Threshold(predicted)
	if prediction.Score >= threshold {
		return mapped, reason, nil
	}

	mappedInfo, err := cat.Info(mapped)
	if err != nil {
		return "", None, err
	}

	fallback := catalog.Unknown
	if mappedInfo.IsText {
		fallback = catalog.Txt
	}
	if fallback != mapped {
		reason = LowConfidence
	}
	return fallback, reason, nil
}
