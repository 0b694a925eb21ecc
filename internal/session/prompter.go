package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ClearValue typed at an Ask prompt replaces a non-empty default with "".
const ClearValue = "-"

// Prompter is the question-and-answer surface used by Run.
type Prompter interface {
	// Ask requests a free-text answer. Empty input keeps def. When check
	// is non-nil, answers it rejects are reported and asked again.
	Ask(label, def string, check func(string) error) (string, error)
	// Choose presents options and returns the selected index. Empty input
	// selects def.
	Choose(label string, options []string, def int) (int, error)
	// Redisplay shows an answer carried over from an earlier round.
	Redisplay(label, value string)
}

// LinePrompter implements Prompter over line-oriented text streams.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter reads answers from r and writes questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

func (p *LinePrompter) Ask(label, def string, check func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.w, "? %s [%s]: ", label, def)
		} else {
			fmt.Fprintf(p.w, "? %s: ", label)
		}

		line, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}

		value := line
		switch line {
		case "":
			value = def
		case ClearValue:
			value = ""
		}

		if check != nil {
			if err := check(value); err != nil {
				fmt.Fprintf(p.w, ">> %v\n", err)
				continue
			}
		}
		return value, nil
	}
}

func (p *LinePrompter) Choose(label string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("no options to choose from")
	}
	for {
		fmt.Fprintf(p.w, "? %s\n", label)
		for i, opt := range options {
			fmt.Fprintf(p.w, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(p.w, "Enter number [1-%d] (default %d): ", len(options), def+1)

		line, err := p.readLine()
		if err != nil {
			return 0, fmt.Errorf("reading selection: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return def, nil
		}

		num, err := strconv.Atoi(line)
		if err != nil || num < 1 || num > len(options) {
			fmt.Fprintf(p.w, ">> invalid selection %q: choose 1-%d\n", line, len(options))
			continue
		}
		return num - 1, nil
	}
}

func (p *LinePrompter) Redisplay(label, value string) {
	fmt.Fprintf(p.w, "? %s %s\n", label, value)
}

// readLine returns the next line without its terminator. Other whitespace
// is kept as typed. A final line
// without a newline is accepted; end of input with nothing read is an error.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
