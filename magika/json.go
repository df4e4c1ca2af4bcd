package magika

import "github.com/goccy/go-json"

// jsonMarshal is a small indirection so the rest of the package doesn't
// need to repeat the goccy/go-json import everywhere a Result gets
// serialized.
func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}
