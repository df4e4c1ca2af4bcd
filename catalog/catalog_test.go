package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleKB = `{
	"python": {"description": "Python source", "group": "code", "mime_type": "text/x-python", "extensions": ["py"], "is_text": true},
	"txt": {"description": "Generic text", "group": "text", "mime_type": "text/plain", "extensions": ["txt"], "is_text": true},
	"unknown": {"description": "Unknown binary data", "group": "unknown", "mime_type": "application/octet-stream", "extensions": ["bin"], "is_text": false}
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleKB))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	info, err := c.Info("python")
	require.NoError(t, err)
	if d := cmp.Diff(Info{
		Label:       "python",
		Description: "Python source",
		Group:       "code",
		MimeType:    "text/x-python",
		Extensions:  []string{"py"},
		IsText:      true,
	}, info); d != "" {
		t.Errorf("unexpected info (-want +got):\n%s", d)
	}
}

func TestInfoMissingLabel(t *testing.T) {
	c, err := Parse([]byte(sampleKB))
	require.NoError(t, err)

	_, err = c.Info("does-not-exist")
	require.Error(t, err)
	require.False(t, c.Has("does-not-exist"))
}

func TestParseRejectsEmptyExtensions(t *testing.T) {
	_, err := Parse([]byte(`{"weird": {"description": "x", "group": "x", "mime_type": "x", "extensions": [], "is_text": false}}`))
	require.Error(t, err)
}
