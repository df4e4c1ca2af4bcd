// Package config loads and validates a Magika ModelConfig: the contract
// between the model trainer and the runtime (window sizes, the target
// label space, per-label thresholds, and the overwrite map).
package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/go-magika/magika/catalog"
	"github.com/go-magika/magika/errkind"
)

const (
	configFile = "config.min.json"
	modelFile  = "model.onnx"
	modelsDir  = "models"
)

var validate = validator.New()

// Config holds the portion of a Magika model's configuration relevant to
// inference.
type Config struct {
	BegSize                   int                              `json:"beg_size" validate:"gt=0"`
	MidSize                   int                              `json:"mid_size" validate:"gte=0"`
	EndSize                   int                              `json:"end_size" validate:"gt=0"`
	BlockSize                 int                              `json:"block_size" validate:"gt=0"`
	MinFileSizeForDl          int64                            `json:"min_file_size_for_dl" validate:"gt=0"`
	PaddingToken              int                              `json:"padding_token" validate:"gte=0"`
	UseInputsAtOffsets        bool                             `json:"use_inputs_at_offsets"`
	OffsetProbes              []int64                          `json:"offset_probes"`
	MediumConfidenceThreshold float32                          `json:"medium_confidence_threshold" validate:"gt=0"`
	TargetLabelsSpace         []catalog.Label                  `json:"target_labels_space" validate:"gt=0,dive,required"`
	Thresholds                map[catalog.Label]float32        `json:"thresholds"`
	OverwriteMap              map[catalog.Label]catalog.Label `json:"overwrite_map"`
}

// Read loads and parses a Config from the given assets dir and model
// name, then validates it against cat (which must already be loaded).
func Read(assetsDir, name string, cat *catalog.Catalog) (Config, error) {
	p := configPath(assetsDir, name)
	b, err := os.ReadFile(p)
	if err != nil {
		return Config{}, errkind.Newf(errkind.InvalidConfig, err, "read config %q", p)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(cat); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse unmarshals a Config document without validating it. Exported
// separately from Read so callers (and tests) can validate against a
// catalog built independently of disk layout.
func Parse(b []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return Config{}, errkind.Newf(errkind.InvalidConfig, err, "unmarshal config")
	}
	for _, required := range []string{
		"beg_size", "mid_size", "end_size", "block_size",
		"min_file_size_for_dl", "padding_token",
		"medium_confidence_threshold", "target_labels_space",
	} {
		if _, ok := raw[required]; !ok {
			return Config{}, errkind.Newf(errkind.InvalidConfig, nil, "missing required key %q", required)
		}
	}
	if _, ok := raw["input_size_beg"]; ok {
		if _, hasBeg := raw["beg_size"]; !hasBeg {
			return Config{}, errkind.Newf(errkind.InvalidConfig, nil,
				"legacy config carries input_size_beg without beg_size/mid_size/end_size; back-compat mirroring is not supported")
		}
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, errkind.Newf(errkind.InvalidConfig, err, "unmarshal config")
	}
	return cfg, nil
}

// Validate checks both the scalar invariants (via struct tags) and the
// cross-field invariants spec.md §4.2 requires, including that every
// label mentioned anywhere in the config resolves against cat.
func (c Config) Validate(cat *catalog.Catalog) error {
	if err := validate.Struct(c); err != nil {
		return errkind.Newf(errkind.InvalidConfig, err, "validate config")
	}
	if c.MidSize != 0 {
		return errkind.Newf(errkind.InvalidConfig, nil, "mid_size must be 0, got %d", c.MidSize)
	}
	if c.UseInputsAtOffsets && len(c.OffsetProbes) == 0 {
		return errkind.Newf(errkind.InvalidConfig, nil, "use_inputs_at_offsets is true but offset_probes is empty")
	}
	if cat != nil {
		if err := c.resolveLabels(cat); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) resolveLabels(cat *catalog.Catalog) error {
	check := func(l catalog.Label) error {
		if !cat.Has(l) {
			return errkind.Newf(errkind.InvalidConfig, nil, "label %q has no catalog entry", l)
		}
		return nil
	}
	for _, l := range c.TargetLabelsSpace {
		if err := check(l); err != nil {
			return err
		}
	}
	for from, to := range c.OverwriteMap {
		if err := check(from); err != nil {
			return err
		}
		if err := check(to); err != nil {
			return err
		}
	}
	for l := range c.Thresholds {
		if err := check(l); err != nil {
			return err
		}
	}
	return nil
}

// Threshold returns the minimum score required to trust a prediction of
// label, falling back to the global medium-confidence threshold when no
// per-label override exists.
func (c Config) Threshold(label catalog.Label) float32 {
	if t, ok := c.Thresholds[label]; ok {
		return t
	}
	return c.MediumConfidenceThreshold
}

// Overwrite returns the label the overwrite map rewrites `label` to, and
// whether a rewrite rule existed at all.
func (c Config) Overwrite(label catalog.Label) (catalog.Label, bool) {
	to, ok := c.OverwriteMap[label]
	return to, ok
}

// FeatureLength returns the length a FeatureVector built from c must
// have: beg + mid + end, plus 8 bytes per enabled offset probe.
func (c Config) FeatureLength() int {
	n := c.BegSize + c.MidSize + c.EndSize
	if c.UseInputsAtOffsets {
		n += 8 * len(c.OffsetProbes)
	}
	return n
}

func configPath(assetsDir, name string) string {
	return path.Join(assetsDir, modelsDir, name, configFile)
}

// ModelPath returns the ONNX graph path for the given assets dir and
// model name.
func ModelPath(assetsDir, name string) string {
	return path.Join(assetsDir, modelsDir, name, modelFile)
}
