package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type captured struct {
	mu   sync.Mutex
	said []string
}

func (c *captured) speak(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.said = append(c.said, text)
	return nil
}

func (c *captured) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.said...)
}

func TestAnnounceDelivers(t *testing.T) {
	c := &captured{}
	q := NewQueue(context.Background(), c.speak, true, nil)
	q.Announce("清空")
	q.Announce("7")
	q.Close()

	got := c.all()
	if len(got) != 2 || got[0] != "清空" || got[1] != "7" {
		t.Errorf("expected [清空 7], got %v", got)
	}
}

func TestDisabledDropsPhrases(t *testing.T) {
	c := &captured{}
	q := NewQueue(context.Background(), c.speak, false, nil)
	q.Announce("1")
	q.SetEnabled(true)
	q.Announce("2")
	q.Announce("")
	q.Close()

	got := c.all()
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("expected [2], got %v", got)
	}
}

func TestFullQueueNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	blocked := func(ctx context.Context, text string) error {
		<-release
		return nil
	}
	q := NewQueue(context.Background(), blocked, true, nil)
	for i := 0; i < QueueSize*3; i++ {
		q.Announce("x")
	}
	close(release)
	q.Close()
}

func TestSpeakerErrorsAreSwallowed(t *testing.T) {
	calls := 0
	failing := func(ctx context.Context, text string) error {
		calls++
		return errors.New("no speech engine")
	}
	q := NewQueue(context.Background(), failing, true, nil)
	q.Announce("a")
	q.Announce("b")
	q.Close()
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestCommandMissingBinary(t *testing.T) {
	speak := Command("redstone-calc-no-such-speech-binary")
	if err := speak(context.Background(), "hi"); err == nil {
		t.Error("expected start error for missing binary")
	}
}

func TestCloseTwice(t *testing.T) {
	q := NewQueue(context.Background(), (&captured{}).speak, true, nil)
	q.Close()
	q.Close()
	q.Announce("after close")
}
