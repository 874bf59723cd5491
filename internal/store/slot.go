package store

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"

	"crediario/internal/log"
	"crediario/internal/storage"
)

// errUnchanged tells mutate that nothing needs saving.
var errUnchanged = errors.New("unchanged")

// slot is one persisted JSON value with its in-memory copy.
type slot[T any] struct {
	key    string
	kv     storage.KV
	bus    *Bus
	logger *log.Logger
	write  *sync.Mutex
	unsub  func()

	mu    sync.RWMutex
	value T
}

func openSlot[T any](ctx context.Context, key string, kv storage.KV, bus *Bus, logger *log.Logger, initial T) *slot[T] {
	s := &slot[T]{
		key:    key,
		kv:     kv,
		bus:    bus,
		logger: logger,
		write:  bus.writeLock(key),
		value:  initial,
	}

	fields := log.NewFields().WithKey(key).WithOperation(log.OpLoad)
	b, err := kv.Load(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.DebugContext(ctx, "Slot not found, using initial value", fields.ToSlice()...)
	case err != nil:
		logger.ErrorContext(ctx, "Failed to load slot, using initial value", fields.WithError(err).ToSlice()...)
	default:
		// Decoding over the initial value keeps defaults for absent fields.
		v := initial
		if err := json.Unmarshal(b, &v); err != nil {
			logger.ErrorContext(ctx, "Corrupt slot, using initial value", fields.WithError(err).ToSlice()...)
		} else {
			s.value = v
		}
	}

	s.unsub = bus.Subscribe(key, s.refresh)
	return s
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// refresh adopts a value saved by another view of the same slot.
func (s *slot[T]) refresh(e Event) {
	if e.origin == s {
		return
	}
	var v T
	if err := json.Unmarshal(e.Value, &v); err != nil {
		s.logger.Error("Failed to decode slot update", log.NewFields().WithKey(s.key).WithError(err).ToSlice()...)
		return
	}
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}

// mutate runs one read-modify-write-notify sequence. fn must not modify its
// argument in place. Watchers run once the new value is in memory. A save
// failure is logged and the new value is kept without notifying subscribers.
// The save outlives cancellation of ctx so an abandoned request cannot leave a
// change unsaved.
func (s *slot[T]) mutate(ctx context.Context, fn func(T) (T, error)) error {
	s.write.Lock()
	defer s.write.Unlock()

	next, err := fn(s.get())
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}

	b, err := json.Marshal(next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.value = next
	s.mu.Unlock()
	s.bus.changed(s.key)

	if err := s.kv.Save(context.WithoutCancel(ctx), s.key, b); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save slot", log.NewFields().WithKey(s.key).WithOperation(log.OpSave).WithError(err).ToSlice()...)
		return nil
	}
	s.bus.Publish(Event{Key: s.key, Value: b, origin: s})
	return nil
}

func (s *slot[T]) close() {
	if s.unsub != nil {
		s.unsub()
	}
}
