// Package summarize produces extractive summaries by word-frequency scoring.
package summarize

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/fedisum/summarybot/internal/bot"
)

// Defaults for how much of the article survives into the comment.
const (
	DefaultSentences = 3
	DefaultWords     = 5
)

// Extractive scores sentences by the frequency of their content words and
// keeps the top scorers in document order. It is deterministic: the same
// body always yields the same summary.
type Extractive struct {
	sentences int
	words     int
}

// New builds an Extractive summarizer keeping up to the given number of
// sentences and ranked words; non-positive values fall back to defaults.
func New(sentences, words int) *Extractive {
	if sentences <= 0 {
		sentences = DefaultSentences
	}
	if words <= 0 {
		words = DefaultWords
	}
	return &Extractive{sentences: sentences, words: words}
}

// Summarize condenses body into a bot.Summary. Degenerate input - empty
// text, or text with no scorable sentences - is an error.
func (e *Extractive) Summarize(body string) (bot.Summary, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return bot.Summary{}, fmt.Errorf("empty article body")
	}

	sentences := splitSentences(body)
	if len(sentences) == 0 {
		return bot.Summary{}, fmt.Errorf("no sentences in article body")
	}

	freq := wordFrequencies(body)
	if len(freq) == 0 {
		return bot.Summary{}, fmt.Errorf("no scorable words in article body")
	}

	top := e.topSentences(sentences, freq)
	summaryLen := 0
	for _, s := range top {
		summaryLen += len(s)
	}

	reduction := 100 - summaryLen*100/len(body)
	if reduction < 0 {
		reduction = 0
	}

	return bot.Summary{
		Reduction:    reduction,
		TopSentences: top,
		TopWords:     e.topWords(freq),
	}, nil
}

// splitSentences breaks text on terminal punctuation followed by
// whitespace, normalizing internal whitespace of each sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	flush := func() {
		s := strings.Join(strings.Fields(b.String()), " ")
		b.Reset()
		if hasLetter(s) {
			sentences = append(sentences, s)
		}
	}

	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range tokenize(text) {
		freq[w]++
	}
	return freq
}

// tokenize lowercases and keeps content words: letters only, length >= 3,
// not a stopword.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

func (e *Extractive) topSentences(sentences []string, freq map[string]int) []string {
	type scored struct {
		idx   int
		score float64
	}

	ranked := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		words := tokenize(s)
		if len(words) == 0 {
			continue
		}
		sum := 0
		for _, w := range words {
			sum += freq[w]
		}
		ranked = append(ranked, scored{idx: i, score: float64(sum) / float64(len(words))})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].idx < ranked[b].idx
	})

	n := e.sentences
	if n > len(ranked) {
		n = len(ranked)
	}
	picked := ranked[:n]
	sort.Slice(picked, func(a, b int) bool { return picked[a].idx < picked[b].idx })

	out := make([]string, 0, n)
	for _, p := range picked {
		out = append(out, sentences[p.idx])
	}
	return out
}

func (e *Extractive) topWords(freq map[string]int) []string {
	type wordCount struct {
		word  string
		count int
	}

	counts := make([]wordCount, 0, len(freq))
	for w, c := range freq {
		counts = append(counts, wordCount{word: w, count: c})
	}
	sort.Slice(counts, func(a, b int) bool {
		if counts[a].count != counts[b].count {
			return counts[a].count > counts[b].count
		}
		return counts[a].word < counts[b].word
	})

	n := e.words
	if n > len(counts) {
		n = len(counts)
	}
	out := make([]string, 0, n)
	for _, wc := range counts[:n] {
		out = append(out, wc.word)
	}
	return out
}
