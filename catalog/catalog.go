// Package catalog loads and exposes Magika's content-type metadata: the
// label -> {description, group, mime type, extensions, is_text} mapping
// that both the output label space and the model label space draw from.
package catalog

import (
	"os"
	"path"

	"github.com/goccy/go-json"

	"github.com/go-magika/magika/errkind"
)

// Label is a stable, machine-readable content-type identifier, e.g.
// "python", "pdf", "txt". The catalog is append-only across model
// versions: new labels gain entries, existing ones are never removed.
type Label string

// A handful of labels the facade's short-circuits reference directly.
// These are not the full enumeration -- the catalog document is -- but
// naming them avoids stringly-typed comparisons at the call sites that
// matter most.
const (
	Empty     Label = "empty"
	Txt       Label = "txt"
	Unknown   Label = "unknown"
	Directory Label = "directory"
	Symlink   Label = "symlink"
	Undefined Label = "undefined"
)

// Info is the metadata attached to every label.
type Info struct {
	Label       Label    `json:"-"`
	Description string   `json:"description"`
	Group       string   `json:"group"`
	MimeType    string   `json:"mime_type"`
	Extensions  []string `json:"extensions"`
	IsText      bool     `json:"is_text"`
}

// Catalog is an immutable, loaded-once label -> Info mapping. It is safe
// for concurrent read access from multiple goroutines.
type Catalog struct {
	entries map[Label]Info
}

const contentTypesKBFile = "content_types_kb.min.json"

// Load reads and parses a content types knowledge base document from the
// given assets directory.
func Load(assetsDir string) (*Catalog, error) {
	p := path.Join(assetsDir, contentTypesKBFile)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, errkind.Newf(errkind.InvalidConfig, err, "read content types kb %q", p)
	}
	return Parse(b)
}

// Parse builds a Catalog from an already-read content types KB document,
// keyed by label as in the on-disk JSON object.
func Parse(b []byte) (*Catalog, error) {
	var raw map[Label]Info
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, errkind.Newf(errkind.InvalidConfig, err, "unmarshal content types kb")
	}
	for label, info := range raw {
		if len(info.Extensions) == 0 {
			return nil, errkind.Newf(errkind.InvalidConfig, nil, "label %q: extensions must be non-empty", label)
		}
		info.Label = label
		raw[label] = info
	}
	return &Catalog{entries: raw}, nil
}

// Info returns the metadata for label, or a MissingLabel error if the
// catalog carries no entry for it.
func (c *Catalog) Info(label Label) (Info, error) {
	info, ok := c.entries[label]
	if !ok {
		return Info{}, errkind.Newf(errkind.MissingLabel, nil, "no content type for label %q", label)
	}
	return info, nil
}

// Has reports whether the catalog carries an entry for label, without
// allocating an error on the miss path. Callers validating a batch of
// labels (e.g. config.Validate) should prefer this over Info.
func (c *Catalog) Has(label Label) bool {
	_, ok := c.entries[label]
	return ok
}

// Labels returns every label the catalog has an entry for. The order is
// unspecified.
func (c *Catalog) Labels() []Label {
	labels := make([]Label, 0, len(c.entries))
	for l := range c.entries {
		labels = append(labels, l)
	}
	return labels
}

// Len reports the number of entries in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }
