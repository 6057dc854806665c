package events

import (
	"errors"
	"testing"
)

type recordingHandler struct {
	seen []Event
	fail bool
}

func (h *recordingHandler) Handle(event Event) error {
	h.seen = append(h.seen, event)
	if h.fail {
		return errors.New("mirror unavailable")
	}
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	return eventType != StatusesChangedEvent
}

func TestInMemoryEventStore_AppendAssignsVersionsAndPositions(t *testing.T) {
	store := NewInMemoryEventStore(nil, 0)

	store.AppendEvent(ComponentsStream, NewEvent(ComponentsChangedEvent, ComponentsStream, ComponentsChanged{Action: "add"}))
	store.AppendEvent(CategoriesStream, NewEvent(CategoriesChangedEvent, CategoriesStream, CategoriesChanged{Action: "add"}))
	store.AppendEvent(ComponentsStream, NewEvent(ComponentsChangedEvent, ComponentsStream, ComponentsChanged{Action: "update"}))

	stream, _ := store.ReadEvents(ComponentsStream, 1)
	if len(stream) != 2 {
		t.Fatalf("Expected 2 component events, got %d", len(stream))
	}
	if stream[1].Version() != 2 || stream[1].Position() != 3 {
		t.Errorf("Expected version 2 at position 3, got version %d at %d", stream[1].Version(), stream[1].Position())
	}

	all, _ := store.ReadAllEvents(1)
	if len(all) != 2 {
		t.Fatalf("Expected 2 events after position 1, got %d", len(all))
	}
	if all[0].Type() != CategoriesChangedEvent {
		t.Errorf("Expected categories event first, got %s", all[0].Type())
	}
	if store.LastPosition() != 3 {
		t.Errorf("Expected last position 3, got %d", store.LastPosition())
	}
}

func TestInMemoryEventStore_Retention(t *testing.T) {
	store := NewInMemoryEventStore(nil, 2)

	for i := 0; i < 5; i++ {
		store.AppendEvent(ComponentsStream, NewEvent(ComponentsChangedEvent, ComponentsStream, nil))
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 2 {
		t.Fatalf("Expected 2 retained events, got %d", len(all))
	}
	if all[0].Position() != 4 || all[1].Version() != 5 {
		t.Errorf("Expected the newest events to be retained, got positions %d and %d", all[0].Position(), all[1].Position())
	}
}

func TestInMemoryEventStore_NotifiesSubscribersSynchronously(t *testing.T) {
	store := NewInMemoryEventStore(nil, 0)
	handler := &recordingHandler{fail: true}
	if err := store.Subscribe(AllEventTypes, handler); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := store.AppendEvent(ComponentsStream, NewEvent(ComponentsChangedEvent, ComponentsStream, nil)); err != nil {
		t.Fatalf("Expected handler failures not to surface, got %v", err)
	}
	store.AppendEvent(StatusesStream, NewEvent(StatusesChangedEvent, StatusesStream, nil))

	if len(handler.seen) != 1 {
		t.Fatalf("Expected 1 handled event, got %d", len(handler.seen))
	}

	if err := store.Unsubscribe(handler); err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}
	store.AppendEvent(ComponentsStream, NewEvent(ComponentsChangedEvent, ComponentsStream, nil))
	if len(handler.seen) != 1 {
		t.Errorf("Expected no delivery after unsubscribe, got %d events", len(handler.seen))
	}
}
