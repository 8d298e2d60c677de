package comment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSentences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", QuoteSentences(nil))
	assert.Equal(t, "> S1", QuoteSentences([]string{"S1"}))
	assert.Equal(t, "> S1\n\n> S2", QuoteSentences([]string{"S1", "S2"}))
}

func TestRankWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", RankWords(nil))
	assert.Equal(t, "foo^#1 bar^#2 ", RankWords([]string{"foo", "bar"}))
	assert.Equal(t, "a^#1 b^#2 c^#3 ", RankWords([]string{"a", "b", "c"}))
}

func TestRenderSubstitutesFields(t *testing.T) {
	t.Parallel()

	r := NewRenderer("[%s](%s) reduced %d%% on %s\n\n%s")
	out := r.Render(Fields{
		Title:     "A Title",
		URL:       "http://example.com/a",
		Reduction: 75,
		Date:      "2024-05-01",
		Sentences: []string{"S1", "S2"},
		Words:     []string{"foo", "bar"},
	})

	assert.Contains(t, out, "[A Title](http://example.com/a) reduced 75% on 2024-05-01")
	assert.Contains(t, out, "> S1\n\n> S2")
	assert.Contains(t, out, "foo^#1 bar^#2 ")
}

func TestRenderWithoutWordsOmitsFooter(t *testing.T) {
	t.Parallel()

	r := NewRenderer("%s %s %d %s %s")
	out := r.Render(Fields{Title: "T", URL: "u", Reduction: 60, Date: "d", Sentences: []string{"S"}})
	assert.Equal(t, "T u 60 d > S", out)
}

func TestLoadRenderer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "en.txt")
	require.NoError(t, os.WriteFile(path, []byte("%s|%s|%d|%s|%s"), 0o600))

	r, err := LoadRenderer(path)
	require.NoError(t, err)
	out := r.Render(Fields{Title: "T", URL: "U", Reduction: 50, Date: "D", Sentences: []string{"S"}})
	assert.Equal(t, "T|U|50|D|> S", out)

	_, err = LoadRenderer(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
