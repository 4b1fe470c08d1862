package annotator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer presents message to the user and blocks until they answer.
// It returns true when navigation may proceed.
type Confirmer func(message string) bool

// AcceptAll confirms every navigation.
func AcceptAll(string) bool { return true }

// DeclineAll refuses every navigation.
func DeclineAll(string) bool { return false }

// ScriptedConfirmer replays a fixed list of answers. Once the answers are
// exhausted it declines. It records every message it was shown.
type ScriptedConfirmer struct {
	mu       sync.Mutex
	answers  []bool
	messages []string
}

// Scripted returns a ScriptedConfirmer answering in order.
func Scripted(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{answers: answers}
}

// Confirm implements Confirmer.
func (s *ScriptedConfirmer) Confirm(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
	if len(s.answers) == 0 {
		return false
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer
}

// Messages returns the messages shown so far.
func (s *ScriptedConfirmer) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// NewPromptConfirmer returns a Confirmer that prints the message to out and
// reads a yes/no answer from in. Only "y", "yes" or "ok" (case-insensitive)
// confirm; anything else declines, including end of input.
func NewPromptConfirmer(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return func(message string) bool {
		fmt.Fprintln(out, message)
		fmt.Fprint(out, "\nProceed? [y/N]: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "ok":
			return true
		default:
			return false
		}
	}
}
