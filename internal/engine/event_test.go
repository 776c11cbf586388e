package engine

import "testing"

func TestEventInvoke(t *testing.T) {
	var e Event[int]
	got := 0

	e.AddListener(func(v int) { got += v })
	e.AddListener(func(v int) { got += v * 10 })

	e.Invoke(3)

	if got != 33 {
		t.Errorf("Expected 33, got %d", got)
	}
}

func TestEventRemoveListener(t *testing.T) {
	var e Event[int]
	calls := 0

	remove := e.AddListener(func(int) { calls++ })
	e.AddListener(func(int) { calls++ })

	remove()
	e.Invoke(0)

	if calls != 1 {
		t.Errorf("Expected 1 call after removal, got %d", calls)
	}
	if e.ListenerCount() != 1 {
		t.Errorf("Expected 1 listener, got %d", e.ListenerCount())
	}

	// Removing twice is a no-op
	remove()
	if e.ListenerCount() != 1 {
		t.Errorf("Expected 1 listener after double remove, got %d", e.ListenerCount())
	}
}

func TestEventNilListener(t *testing.T) {
	var e Event[string]

	remove := e.AddListener(nil)
	remove() // Should not panic

	if e.ListenerCount() != 0 {
		t.Error("nil listener should not be registered")
	}

	e.Invoke("x") // Should not panic
}

func TestEventRemoveAllListeners(t *testing.T) {
	var e Event[int]
	e.AddListener(func(int) {})
	e.AddListener(func(int) {})

	e.RemoveAllListeners()

	if e.ListenerCount() != 0 {
		t.Errorf("Expected 0 listeners, got %d", e.ListenerCount())
	}
}
