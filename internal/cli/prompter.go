package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one answer per line. Once input is exhausted or unreadable
// every answer is "" and Closed reports true.
type Prompter struct {
	sc     *bufio.Scanner
	out    io.Writer
	closed bool
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Ask(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if p.closed {
		return ""
	}
	if !p.sc.Scan() {
		p.closed = true
		fmt.Fprintln(p.out)
		return ""
	}
	return strings.TrimRight(p.sc.Text(), "\r")
}

func (p *Prompter) Closed() bool { return p.closed }
