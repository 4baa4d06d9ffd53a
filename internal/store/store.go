package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/log"

	"github.com/google/uuid"
)

// DefaultKey is the key the event collection is stored under.
const DefaultKey = "scheduleEvents"

// ErrNotFound is returned when an event id is unknown.
var ErrNotFound = errors.New("event not found")

// Observer receives a snapshot of the collection after it changes.
type Observer func(events []calendar.Event)

// Store owns the event collection. Every mutation is validated first and
// then persisted as a whole before it becomes visible.
type Store struct {
	kv    KV
	key   string
	newID func() string

	mu        sync.RWMutex
	events    []calendar.Event
	lastSaved []byte

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int
}

type Option func(*Store)

// WithKey stores the collection under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the id source, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// New returns an empty store backed by kv. Use Open to load saved events.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		key:       DefaultKey,
		newID:     newEventID,
		events:    []calendar.Event{},
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads the saved collection. Missing or
// unparseable state yields an empty collection; only I/O failures of the
// backend are returned.
func Open(ctx context.Context, kv KV, opts ...Option) (*Store, error) {
	s := New(kv, opts...)

	data, err := kv.Load(ctx, s.key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		log.Debug("no saved events", "key", s.key)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load events: %w", err)
	}

	events, err := decode(data)
	if err != nil {
		log.Error("saved events unreadable, starting empty", err, "key", s.key)
		return s, nil
	}

	s.events = events
	s.lastSaved = data
	log.Info("events loaded", "key", s.key, "count", len(events))
	return s, nil
}

// Key returns the KV key of the collection.
func (s *Store) Key() string {
	return s.key
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []calendar.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Get returns the event with id.
func (s *Store) Get(id string) (calendar.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.events[i], true
	}
	return calendar.Event{}, false
}

// Create validates draft and appends it under a fresh id.
func (s *Store) Create(ctx context.Context, draft calendar.Draft) (calendar.Event, error) {
	if err := draft.Validate(); err != nil {
		return calendar.Event{}, err
	}

	s.mu.Lock()
	event := draft.WithID(s.newID())
	next := append(slices.Clone(s.events), event)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return calendar.Event{}, err
	}

	log.Debug("event created", "id", event.ID, "date", event.Date)
	s.notify()
	return event, nil
}

// Update replaces the fields of event id with draft, keeping its id and
// position.
func (s *Store) Update(ctx context.Context, id string, draft calendar.Draft) (calendar.Event, error) {
	if err := draft.Validate(); err != nil {
		return calendar.Event{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return calendar.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	event := draft.WithID(id)
	next := slices.Clone(s.events)
	next[i] = event
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return calendar.Event{}, err
	}

	log.Debug("event updated", "id", id)
	s.notify()
	return event, nil
}

// Delete removes event id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	next := slices.Delete(slices.Clone(s.events), i, i+1)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	log.Debug("event deleted", "id", id)
	s.notify()
	return nil
}

// Reload re-reads the collection from the backend, e.g. after another
// process changed the store file. Unreadable data leaves the current
// collection in place.
func (s *Store) Reload(ctx context.Context) error {
	data, err := s.kv.Load(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		data, err = []byte("[]"), nil
	}
	if err != nil {
		return fmt.Errorf("reload events: %w", err)
	}

	s.mu.Lock()
	if bytes.Equal(data, s.lastSaved) {
		s.mu.Unlock()
		return nil
	}
	events, err := decode(data)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reload events: %w", err)
	}
	s.events = events
	s.lastSaved = data
	s.mu.Unlock()

	log.Info("events reloaded", "key", s.key, "count", len(events))
	s.notify()
	return nil
}

// Subscribe registers fn to run after every change. The returned func
// removes it.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

// commit persists next and makes it current. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []calendar.Event) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := s.kv.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	s.events = next
	s.lastSaved = data
	return nil
}

func (s *Store) notify() {
	snapshot := s.All()

	s.obsMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn(slices.Clone(snapshot))
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.events, func(e calendar.Event) bool {
		return e.ID == id
	})
}

func decode(data []byte) ([]calendar.Event, error) {
	var events []calendar.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return events, nil
}

// newEventID returns a UUIDv7, which sorts by creation time.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
