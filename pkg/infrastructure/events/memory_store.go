package events

import (
	"sync"

	"go.uber.org/zap"
)

// InMemoryEventStore keeps the change log in memory. Positions are absolute and keep
// increasing after old events are dropped by the retention bound.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	position    int
	allEvents   []Event
	retain      int
	logger      *zap.Logger
}

// NewInMemoryEventStore creates a store keeping at most retain events per stream and
// overall (0 keeps everything)
func NewInMemoryEventStore(logger *zap.Logger, retain int) *InMemoryEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		retain:      retain,
		logger:      logger,
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent records the event and then runs the subscribed handlers on the caller's
// goroutine, outside the store lock. Handler errors are logged, never returned.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()

	stream := s.streams[streamID]
	version := 1
	if n := len(stream); n > 0 {
		version = stream[n-1].Version() + 1
	}

	s.position++
	eventWithVersion := BaseEvent{
		EventType:     event.Type(),
		Stream:        streamID,
		EventData:     event.Data(),
		EventTime:     event.Timestamp(),
		EventVersion:  version,
		EventPosition: s.position,
	}

	s.streams[streamID] = trim(append(stream, eventWithVersion), s.retain)
	s.allEvents = trim(append(s.allEvents, eventWithVersion), s.retain)
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)

	s.mutex.Unlock()

	s.notify(handlers, eventWithVersion)
	return nil
}

// ReadEvents returns the retained events of a stream with version >= fromVersion
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := []Event{}
	for _, e := range s.streams[streamID] {
		if e.Version() >= fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReadAllEvents returns the retained events with a position after fromPosition
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := []Event{}
	for _, e := range s.allEvents {
		if e.Position() > fromPosition {
			out = append(out, e)
		}
	}
	return out, nil
}

// LastPosition returns the position of the newest event, 0 when empty
func (s *InMemoryEventStore) LastPosition() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.position
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes handler from every event type. Handlers must be comparable.
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		newHandlers := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				newHandlers = append(newHandlers, h)
			}
		}
		s.subscribers[eventType] = newHandlers
	}
	return nil
}

func (s *InMemoryEventStore) notify(handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.logger.Error("event handler failed",
				zap.String("type", event.Type()),
				zap.Int("position", event.Position()),
				zap.Error(err))
		}
	}
}

func trim(events []Event, retain int) []Event {
	if retain <= 0 || len(events) <= retain {
		return events
	}
	return append([]Event(nil), events[len(events)-retain:]...)
}
