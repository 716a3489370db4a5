// Package taskedit lets the user type or revise a task description in an
// editable line prompt before it is delegated.
package taskedit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// ErrCancelled is returned when the user interrupts the prompt.
var ErrCancelled = errors.New("task entry cancelled")

const defaultPrompt = "task> "

// Options controls the prompt text, the prefilled task and IO streams.
type Options struct {
	Prompt  string
	Initial string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Edit shows a prompt prefilled with Initial and returns the submitted task.
// Ctrl+C and Ctrl+D return ErrCancelled.
func Edit(opts Options) (string, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	cfg := &readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
	}
	if in, ok := opts.Stdin.(io.ReadCloser); ok {
		cfg.Stdin = in
	} else if opts.Stdin != nil {
		cfg.Stdin = io.NopCloser(opts.Stdin)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", fmt.Errorf("init task prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.ReadlineWithDefault(opts.Initial)
	if err := classify(err); err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return ErrCancelled
	default:
		return fmt.Errorf("read task input: %w", err)
	}
}
