// Package store holds the ledger's entity collections. Each collection lives
// in one persisted slot; mutations on a slot run one at a time and notify the
// Bus after saving.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"crediario/internal/core"
	"crediario/internal/log"
	"crediario/internal/storage"
)

// Keys lists every slot the store persists.
var Keys = []string{KeyCustomers, KeyTransactions, KeyExpenses, KeySettings}

type Options struct {
	// Bus shares change notifications between views. A private bus is
	// created when nil.
	Bus    *Bus
	Logger *log.Logger
	Now    func() time.Time
	NewID  func() string
}

type Store struct {
	Customers    *Customers
	Transactions *Transactions
	Expenses     *Expenses
	Settings     *Settings

	bus   *Bus
	close []func()
}

// Open loads every slot from kv. Load problems are logged and never fail Open.
func Open(ctx context.Context, kv storage.KV, opts Options) *Store {
	if opts.Bus == nil {
		opts.Bus = NewBus()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := opts.Logger.WithComponent(log.ComponentStore)

	customers := openSlot(ctx, KeyCustomers, kv, opts.Bus, logger, []core.Customer{})
	transactions := openSlot(ctx, KeyTransactions, kv, opts.Bus, logger, []core.Transaction{})
	expenses := openSlot(ctx, KeyExpenses, kv, opts.Bus, logger, []core.Expense{})
	settings := openSlot(ctx, KeySettings, kv, opts.Bus, logger, core.DefaultAppConfig())

	return &Store{
		Customers:    &Customers{slot: customers, now: opts.Now, newID: opts.NewID},
		Transactions: &Transactions{slot: transactions, now: opts.Now, newID: opts.NewID},
		Expenses:     &Expenses{slot: expenses, newID: opts.NewID},
		Settings:     &Settings{slot: settings},
		bus:          opts.Bus,
		close:        []func(){customers.close, transactions.close, expenses.close, settings.close},
	}
}

// Bus returns the bus the store publishes on.
func (s *Store) Bus() *Bus {
	return s.bus
}

// Close detaches the store from its bus. Persisted data is untouched.
func (s *Store) Close() {
	for _, fn := range s.close {
		fn()
	}
}
