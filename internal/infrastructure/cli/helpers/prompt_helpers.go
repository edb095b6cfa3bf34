package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxAttempts = 3

// Asker reads answers to interactive questions, one line each. Blank answers
// and end of input take the question's default.
type Asker struct {
	out io.Writer
	in  *bufio.Reader
}

// NewAsker reads answers from in and writes questions to out.
func NewAsker(out io.Writer, in io.Reader) *Asker {
	return &Asker{out: out, in: bufio.NewReader(in)}
}

// answer prints prompt and returns the trimmed reply. done is true when input
// has ended.
func (a *Asker) answer(prompt string) (reply string, done bool) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.out)
		return "", true
	}
	return strings.TrimSpace(line), false
}

// Text asks for free text.
func (a *Asker) Text(label, def string) string {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	reply, _ := a.answer(prompt)
	if reply == "" {
		return def
	}
	return reply
}

// Pick asks for one of options, matched case-insensitively and returned in
// its canonical spelling. Unlisted answers are asked again; after
// maxAttempts the default wins.
func (a *Asker) Pick(label string, options []string, def string) string {
	prompt := fmt.Sprintf("%s (%s) [%s]: ", label, strings.Join(options, "/"), def)
	for i := 0; i < maxAttempts; i++ {
		reply, done := a.answer(prompt)
		if done || reply == "" {
			return def
		}
		for _, opt := range options {
			if strings.EqualFold(reply, opt) {
				return opt
			}
		}
		fmt.Fprintf(a.out, "Choose one of: %s\n", strings.Join(options, ", "))
	}
	return def
}

// YesNo asks a yes/no question. Answers other than y, yes, n or no are asked
// again.
func (a *Asker) YesNo(label string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	prompt := fmt.Sprintf("%s [%s]: ", label, hint)
	for i := 0; i < maxAttempts; i++ {
		reply, done := a.answer(prompt)
		if done || reply == "" {
			return def
		}
		switch strings.ToLower(reply) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(a.out, "Please answer y or n.")
	}
	return def
}

// Confirm asks before a destructive action. Anything but an explicit yes
// declines.
func (a *Asker) Confirm(question string) bool {
	return a.YesNo(question, false)
}
