package store

import (
	"slices"
	"sync"
)

// AllKeys subscribes a listener to every slot.
const AllKeys = "*"

// Event announces that a slot was saved. Value is the slot's JSON encoding.
type Event struct {
	Key   string
	Value []byte

	origin any
}

// Listener runs synchronously on the goroutine that saved the slot, while the
// slot's write lock is held. It must not mutate the store.
type Listener func(Event)

type subscription struct {
	id  int
	key string
	fn  Listener
}

// Bus fans store changes out to subscribers in subscription order. Store views
// opened on the same Bus stay in sync with each other.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	subs     []subscription
	watchers []subscription
	locks    map[string]*sync.Mutex
}

func NewBus() *Bus {
	return &Bus{locks: make(map[string]*sync.Mutex)}
}

// Subscribe registers fn for key (or AllKeys) and returns its unsubscribe func.
func (b *Bus) Subscribe(key string, fn Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, key: key, fn: fn})

	return b.remover(&b.subs, id)
}

// Watch registers fn to run after every in-memory change of any slot, before
// the change is saved. Unlike Subscribe it also fires when the save fails.
func (b *Bus) Watch(fn func(key string)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.watchers = append(b.watchers, subscription{id: id, key: AllKeys, fn: func(e Event) { fn(e.Key) }})
	return b.remover(&b.watchers, id)
}

func (b *Bus) remover(list *[]subscription, id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range *list {
				if s.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.key == e.Key || s.key == AllKeys {
			subs = append(subs, s)
		}
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(e)
	}
}

func (b *Bus) changed(key string) {
	b.mu.Lock()
	watchers := slices.Clone(b.watchers)
	b.mu.Unlock()

	for _, w := range watchers {
		w.fn(Event{Key: key})
	}
}

// writeLock returns the mutex shared by every view of key on this bus.
func (b *Bus) writeLock(key string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[key]
	if !ok {
		l = &sync.Mutex{}
		b.locks[key] = l
	}
	return l
}
