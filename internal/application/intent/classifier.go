// Package intent classifies free-text command lines into domain intents.
//
// Classification walks an ordered table of verb rules. The first rule whose
// prefix matches owns the line: if its pattern then fails, the result is an
// UnknownIntent carrying that verb's usage hint and lower-priority verbs are
// never tried.
package intent

import (
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Rule pairs a verb predicate with the extractor that builds its intent.
type Rule struct {
	Verb    string
	Matches func(line string) bool
	Parse   func(line string) domain.Intent
}

// Classifier implements ports.IntentClassifier.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier with the default verb priority:
// find, move, copy, append, replace, create folder, create file, zip,
// summarize, delete.
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules builds a classifier over a custom rule table.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// DefaultRules returns the verb table in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Verb: "find", Matches: hasPrefix("find"), Parse: parseFind},
		{Verb: "move", Matches: hasPrefix("move"), Parse: parseMove},
		{Verb: "copy", Matches: hasPrefix("copy"), Parse: parseCopy},
		{Verb: "append", Matches: hasPrefix("append"), Parse: parseAppend},
		{Verb: "replace", Matches: hasPrefix("replace"), Parse: parseReplace},
		{Verb: "create folder", Matches: hasPrefix("create folder", "make folder"), Parse: parseCreateFolder},
		{Verb: "create file", Matches: hasPrefix("create file"), Parse: parseCreateFile},
		{Verb: "zip", Matches: hasPrefix("zip"), Parse: parseZip},
		{Verb: "summarize", Matches: hasPrefix("summarize"), Parse: parseSummarize},
		{Verb: "delete", Matches: hasPrefix("delete"), Parse: parseDelete},
	}
}

// Classify implements ports.IntentClassifier. It is a pure function of line.
func (c *Classifier) Classify(line string) domain.Intent {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.EmptyIntent{}
	}
	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return domain.ExitIntent{}
	}
	for _, rule := range c.rules {
		if rule.Matches(line) {
			return rule.Parse(line)
		}
	}
	return domain.UnknownIntent{Message: MsgNotUnderstood}
}

func hasPrefix(prefixes ...string) func(string) bool {
	return func(line string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
		return false
	}
}

var _ ports.IntentClassifier = (*Classifier)(nil)
