package store

import (
	"context"
	"slices"
	"time"

	"crediario/internal/core"
)

const KeyTransactions = "crediario_transacoes"

// Transactions is the view over the cash-movement slot.
type Transactions struct {
	slot  *slot[[]core.Transaction]
	now   func() time.Time
	newID func() string
}

func (t *Transactions) Add(ctx context.Context, d core.TransactionDraft) (core.Transaction, error) {
	tx := d.Transaction()
	tx.ID = t.newID()
	tx.OccurredAt = t.now()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	err := t.slot.mutate(ctx, func(cur []core.Transaction) ([]core.Transaction, error) {
		return append(slices.Clip(cur), tx), nil
	})
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// Update merges p into the transaction with the given id. Unknown ids are
// ignored.
func (t *Transactions) Update(ctx context.Context, id string, p core.TransactionPatch) error {
	return t.slot.mutate(ctx, func(cur []core.Transaction) ([]core.Transaction, error) {
		i := slices.IndexFunc(cur, func(x core.Transaction) bool { return x.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		updated := p.Apply(cur[i])
		if err := updated.Validate(); err != nil {
			return nil, err
		}
		next := slices.Clone(cur)
		next[i] = updated
		return next, nil
	})
}

func (t *Transactions) Remove(ctx context.Context, id string) error {
	return t.slot.mutate(ctx, func(cur []core.Transaction) ([]core.Transaction, error) {
		if !slices.ContainsFunc(cur, func(x core.Transaction) bool { return x.ID == id }) {
			return nil, errUnchanged
		}
		return slices.DeleteFunc(slices.Clone(cur), func(x core.Transaction) bool { return x.ID == id }), nil
	})
}

func (t *Transactions) Get(id string) (core.Transaction, bool) {
	for _, x := range t.slot.get() {
		if x.ID == id {
			return x, true
		}
	}
	return core.Transaction{}, false
}

func (t *Transactions) List() []core.Transaction {
	return slices.Clone(t.slot.get())
}

// ListByCustomer returns the transactions referencing customerID.
func (t *Transactions) ListByCustomer(customerID string) []core.Transaction {
	var out []core.Transaction
	for _, x := range t.slot.get() {
		if x.CustomerID == customerID {
			out = append(out, x)
		}
	}
	return out
}
