package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Prompter reads command lines for the interactive shell.
type Prompter struct {
	in       *bufio.Scanner
	renderer *Renderer
}

// NewPrompter constructs a prompter reading from in, defaulting to stdin.
func NewPrompter(in io.Reader, renderer *Renderer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Prompter{in: scanner, renderer: renderer}
}

// ReadLine prints the prompt and returns the next line. io.EOF is returned
// when input ends.
func (p *Prompter) ReadLine() (string, error) {
	p.renderer.Prompt()
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}
