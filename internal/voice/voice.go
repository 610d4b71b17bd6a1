// Package voice speaks short announcements through an external command.
//
// Announce never blocks the caller: phrases go onto a bounded queue that a
// single worker drains. The worker starts the speech command and does not
// wait for it, so overlapping announcements may finish in any order.
// Failures are logged at debug level and otherwise dropped.
package voice

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// QueueSize bounds the number of phrases waiting to be spoken.
const QueueSize = 16

// Speaker renders one phrase.
type Speaker func(ctx context.Context, text string) error

// Queue is a one-way announcement channel.
type Queue struct {
	ch      chan string
	speak   Speaker
	logger  *slog.Logger
	enabled atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue starts a worker that passes each phrase to speak. The worker
// stops when ctx is done or Close is called.
func NewQueue(ctx context.Context, speak Speaker, enabled bool, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		ch:     make(chan string, QueueSize),
		speak:  speak,
		logger: logger,
		done:   make(chan struct{}),
	}
	q.enabled.Store(enabled)
	go q.run(ctx)
	return q
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case text, ok := <-q.ch:
			if !ok {
				return
			}
			if err := q.speak(ctx, text); err != nil {
				q.logger.Debug("speak", "text", text, "error", err)
			}
		}
	}
}

// Announce queues text. It drops the phrase when voice is off, the text
// is empty, or the queue is full.
func (q *Queue) Announce(text string) {
	if text == "" || !q.enabled.Load() {
		return
	}
	select {
	case q.ch <- text:
	default:
		q.logger.Debug("announcement dropped", "text", text)
	}
}

// SetEnabled turns announcements on or off.
func (q *Queue) SetEnabled(on bool) { q.enabled.Store(on) }

// Enabled reports whether announcements are on.
func (q *Queue) Enabled() bool { return q.enabled.Load() }

// Close stops accepting phrases and waits for the worker to drain.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.enabled.Store(false)
		close(q.ch)
	})
	<-q.done
}

// Command returns a Speaker that starts name with args followed by the
// phrase. The process is reaped in the background and never awaited by
// the worker.
func Command(name string, args ...string) Speaker {
	return func(ctx context.Context, text string) error {
		argv := append(append([]string(nil), args...), text)
		cmd := exec.Command(name, argv...)
		if err := cmd.Start(); err != nil {
			return err
		}
		go cmd.Wait()
		return nil
	}
}

// DefaultSpeaker picks the platform speech command. A non-empty command
// line overrides it; the phrase is appended as the last argument.
func DefaultSpeaker(commandLine string) Speaker {
	if fields := strings.Fields(commandLine); len(fields) > 0 {
		return Command(fields[0], fields[1:]...)
	}
	if runtime.GOOS == "windows" {
		return func(ctx context.Context, text string) error {
			script := "Add-Type -AssemblyName System.Speech; " +
				"$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
				"$s.Speak(\"" + strings.ReplaceAll(text, "\"", "") + "\")"
			return Command("PowerShell", "-NoProfile", "-Command")(ctx, script)
		}
	}
	if runtime.GOOS == "darwin" {
		return Command("say")
	}
	return Command("espeak")
}
