package summarizer

import (
	"context"
	"strings"
	"unicode"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Extractive is the offline fallback: it keeps leading sentences until the
// summary reaches min_length characters. It never fails for non-blank input.
type Extractive struct {
	def domain.BackendDefinition
}

func newExtractive(def domain.BackendDefinition) *Extractive {
	return &Extractive{def: def}
}

func (e *Extractive) Name() string {
	return backendName(e.def, domain.BackendExtractive)
}

func (e *Extractive) Summarize(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", transportFailure(e.Name(), 0, err)
	}
	text = domain.TruncateRunes(text, valueOrDefaultInt(e.def.MaxInputChars, domain.DefaultMaxInputChars))
	target := valueOrDefaultInt(e.def.MinLength, domain.DefaultSummaryMinLength)

	var picked []string
	length := 0
	for _, sentence := range splitSentences(text) {
		picked = append(picked, sentence)
		length += len([]rune(sentence)) + 1
		if length >= target {
			break
		}
	}
	return finish(strings.Join(picked, " "))
}

// splitSentences breaks text after terminal punctuation and at line breaks,
// collapsing inner whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	flush := func() {
		if s := strings.Join(strings.Fields(current.String()), " "); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}

var _ ports.Summarizer = (*Extractive)(nil)
