package loop

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/loomterm/loom/cell"
	"github.com/loomterm/loom/key"
	"github.com/loomterm/loom/node"
)

type stubLeaf struct {
	node.Base
	rendered int
}

func (s *stubLeaf) Children() []node.Node             { return nil }
func (s *stubLeaf) FocusableDescendants() []node.Node { return node.WalkFocusableDescendants(s, nil) }
func (s *stubLeaf) BuildBindings(node.BindingDeclarer) {}
func (s *stubLeaf) HandleInput(node.InputEvent) node.Handling {
	return node.NotHandled
}
func (s *stubLeaf) Render(c cell.Canvas) {
	s.rendered++
	c.WriteText(0, 0, "hi", cell.DefaultStyle)
}

func TestRunPerformsStartupAndShutdownSequencing(t *testing.T) {
	leaf := &stubLeaf{}
	var out bytes.Buffer
	l := New(Config{
		Build:  func() node.Node { return leaf },
		Sink:   &out,
		Width:  10,
		Height: 2,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}

	got := out.String()
	if !bytes.Contains([]byte(got), []byte(cell.EnterAltScreen)) {
		t.Fatalf("expected startup sequence to include EnterAltScreen")
	}
	if !bytes.Contains([]byte(got), []byte(cell.ExitAltScreen)) {
		t.Fatalf("expected shutdown sequence to include ExitAltScreen")
	}
	if leaf.rendered == 0 {
		t.Fatalf("expected at least one frame to have rendered")
	}
}

func TestRequestStopEndsTheLoop(t *testing.T) {
	leaf := &stubLeaf{}
	var out bytes.Buffer
	var stopFn func()
	l := New(Config{
		Build: func() node.Node { return leaf },
		Sink:  &out,
	})
	// take the loop's stop function directly so the test can end Run
	stopFn = l.requestStop

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	stopFn()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on RequestStop shutdown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected loop to exit promptly after RequestStop")
	}
}

func TestInvalidateTriggersExtraFrame(t *testing.T) {
	leaf := &stubLeaf{}
	var out bytes.Buffer
	l := New(Config{
		Build: func() node.Node { return leaf },
		Sink:  &out,
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)

	before := leaf.rendered
	l.Invalidate()
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	if leaf.rendered <= before {
		t.Fatalf("expected Invalidate to trigger an additional frame")
	}
}

func TestWithClickCountIncrementsWithinThresholdAndCaps(t *testing.T) {
	l := New(Config{Build: func() node.Node { return &stubLeaf{} }, Sink: &bytes.Buffer{}, ClickThreshold: time.Second})

	first := l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 3, Y: 3})
	second := l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 3, Y: 3})
	third := l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 3, Y: 3})
	fourth := l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 3, Y: 3})

	if first.ClickCount != 1 || second.ClickCount != 2 || third.ClickCount != 3 || fourth.ClickCount != 3 {
		t.Fatalf("expected click counts 1,2,3,3 (triple-max), got %d,%d,%d,%d",
			first.ClickCount, second.ClickCount, third.ClickCount, fourth.ClickCount)
	}
}

func TestWithClickCountResetsForDifferentCoordinates(t *testing.T) {
	l := New(Config{Build: func() node.Node { return &stubLeaf{} }, Sink: &bytes.Buffer{}, ClickThreshold: time.Second})

	l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 3, Y: 3})
	moved := l.withClickCount(key.MouseEvent{Button: key.ButtonLeft, Action: key.ActionDown, X: 4, Y: 3})

	if moved.ClickCount != 1 {
		t.Fatalf("expected click count to reset to 1 at a different coordinate, got %d", moved.ClickCount)
	}
}
