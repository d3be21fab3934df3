package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateResize(t *testing.T) {
	in := New()
	in.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768})
	in.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != EventWindowResize || e.Width != 1024 || e.Height != 768 {
		t.Errorf("unexpected resize event %+v", e)
	}
}

func TestTranslateQuit(t *testing.T) {
	in := New()
	if !in.translate(&sdl.QuitEvent{}) {
		t.Error("quit event should request exit")
	}
}

func TestTranslateWheel(t *testing.T) {
	in := New()
	in.translate(&sdl.MouseWheelEvent{Y: -2})
	in.translate(&sdl.MouseWheelEvent{X: 3})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 wheel event, got %d", len(events))
	}
	if events[0].WheelY != -2 {
		t.Errorf("expected WheelY -2, got %v", events[0].WheelY)
	}
}

func TestKeyPressesOnly(t *testing.T) {
	in := New()
	key := sdl.Keysym{Scancode: sdl.SCANCODE_F12}
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: key})
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: key})
	in.translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: key})

	events := in.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 key event, got %d", len(events))
	}
	if events[0].Type != EventKeyDown || events[0].Key != sdl.SCANCODE_F12 {
		t.Errorf("unexpected key event %+v", events[0])
	}
}

func TestMouseButtons(t *testing.T) {
	in := New()
	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 10, Y: 20, Button: sdl.BUTTON_LEFT})
	in.translate(&sdl.MouseMotionEvent{X: 15, Y: 25})
	in.translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, X: 15, Y: 25, Button: sdl.BUTTON_LEFT})

	want := []EventType{EventMouseDown, EventMouseMove, EventMouseUp}
	events := in.Events()
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("event %d: expected type %d, got %d", i, want[i], e.Type)
		}
	}
	if events[1].MouseX != 15 || events[1].MouseY != 25 {
		t.Errorf("unexpected motion %+v", events[1])
	}
}
