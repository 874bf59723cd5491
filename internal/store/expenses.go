package store

import (
	"context"
	"slices"

	"crediario/internal/core"
)

const KeyExpenses = "crediario_despesas"

// Expenses is the view over the operating-expense slot. Expenses are never
// mirrored into transactions.
type Expenses struct {
	slot  *slot[[]core.Expense]
	newID func() string
}

func (e *Expenses) Add(ctx context.Context, d core.ExpenseDraft) (core.Expense, error) {
	exp := d.Expense()
	exp.ID = e.newID()
	if err := exp.Validate(); err != nil {
		return core.Expense{}, err
	}
	err := e.slot.mutate(ctx, func(cur []core.Expense) ([]core.Expense, error) {
		return append(slices.Clip(cur), exp), nil
	})
	if err != nil {
		return core.Expense{}, err
	}
	return exp, nil
}

func (e *Expenses) Update(ctx context.Context, id string, p core.ExpensePatch) error {
	return e.slot.mutate(ctx, func(cur []core.Expense) ([]core.Expense, error) {
		i := slices.IndexFunc(cur, func(x core.Expense) bool { return x.ID == id })
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

func (e *Expenses) Remove(ctx context.Context, id string) error {
	return e.slot.mutate(ctx, func(cur []core.Expense) ([]core.Expense, error) {
		if !slices.ContainsFunc(cur, func(x core.Expense) bool { return x.ID == id }) {
			return nil, errUnchanged
		}
		return slices.DeleteFunc(slices.Clone(cur), func(x core.Expense) bool { return x.ID == id }), nil
	})
}

func (e *Expenses) Get(id string) (core.Expense, bool) {
	for _, x := range e.slot.get() {
		if x.ID == id {
			return x, true
		}
	}
	return core.Expense{}, false
}

func (e *Expenses) List() []core.Expense {
	return slices.Clone(e.slot.get())
}
