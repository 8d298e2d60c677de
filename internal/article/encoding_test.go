package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclaredCharset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mediaType string
		params    map[string]string
		want      string
	}{
		{
			name:      "explicit charset wins",
			mediaType: "text/html",
			params:    map[string]string{"charset": "UTF-8"},
			want:      "utf-8",
		},
		{
			name:      "text without charset defaults to latin-1",
			mediaType: "text/html",
			want:      "iso-8859-1",
		},
		{
			name:      "non-text without charset defaults to utf-8",
			mediaType: "application/json",
			want:      "utf-8",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, declaredCharset(tc.mediaType, tc.params))
		})
	}
}

func TestDecodeBodyDeclaredLatin1WithoutMarkerBecomesUTF8(t *testing.T) {
	t.Parallel()

	// UTF-8 bytes for "café" mis-declared as ISO-8859-1. Without the marker
	// in the text the declaration is overridden and the UTF-8 bytes kept.
	raw := []byte("<html><body>caf\xc3\xa9</body></html>")
	got := decodeBody(raw, "iso-8859-1")
	assert.Equal(t, "<html><body>café</body></html>", got)
}

func TestDecodeBodyMarkerForcesLatin1(t *testing.T) {
	t.Parallel()

	// The page advertises ISO-8859-1 in its own markup and carries the
	// Latin-1 byte 0xE9 ("é"), so it must be decoded as Latin-1.
	raw := []byte("<meta charset=\"ISO-8859-1\">caf\xe9")
	got := decodeBody(raw, "utf-8")
	assert.Equal(t, "<meta charset=\"ISO-8859-1\">café", got)
}

func TestDecodeBodyMarkerForcesLatin1EvenWhenDeclared(t *testing.T) {
	t.Parallel()

	raw := []byte("<meta charset=\"iso-8859-1\">caf\xe9")
	got := decodeBody(raw, "iso-8859-1")
	assert.Equal(t, "<meta charset=\"iso-8859-1\">café", got)
}

func TestDecodeBodyUTF8Passthrough(t *testing.T) {
	t.Parallel()

	raw := []byte("<html>plain utf-8 café</html>")
	got := decodeBody(raw, "utf-8")
	assert.Equal(t, string(raw), got)
}
