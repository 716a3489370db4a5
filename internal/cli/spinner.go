package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerTickInterval = 120 * time.Millisecond

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// spinner draws a status line with elapsed seconds until stopped.
type spinner struct {
	w       io.Writer
	label   string
	started time.Time
	width   int

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func startSpinner(enabled bool, w io.Writer, label string) func() {
	if !enabled || w == nil {
		return func() {}
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = "Waiting"
	}

	s := &spinner{
		w:       w,
		label:   label,
		started: time.Now(),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s.stop
}

func (s *spinner) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(spinnerTickInterval)
	defer ticker.Stop()

	frame := 0
	s.render(frame)
	for {
		select {
		case <-s.done:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
			return
		case <-ticker.C:
			frame++
			s.render(frame)
		}
	}
}

func (s *spinner) render(frame int) {
	line := fmt.Sprintf("%c %s %ds", spinnerFrames[frame%len(spinnerFrames)], s.label, int(time.Since(s.started).Seconds()))
	if len(line) > s.width {
		s.width = len(line)
	}
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}
