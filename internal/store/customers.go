package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"crediario/internal/core"
)

const KeyCustomers = "crediario_clientes"

// Customers is the view over the customer slot.
type Customers struct {
	slot  *slot[[]core.Customer]
	now   func() time.Time
	newID func() string
}

// Add registers a new active customer. It fails with ErrDuplicateCustomer when
// an active customer already has the same name.
func (c *Customers) Add(ctx context.Context, d core.CustomerDraft) (core.Customer, error) {
	cust := d.Customer()
	cust.ID = c.newID()
	cust.RegisteredAt = c.now()
	if err := cust.Validate(); err != nil {
		return core.Customer{}, err
	}

	err := c.slot.mutate(ctx, func(cur []core.Customer) ([]core.Customer, error) {
		if activeNameTaken(cur, cust.Name, "") {
			return nil, core.ErrDuplicateCustomer
		}
		return append(slices.Clip(cur), cust), nil
	})
	if err != nil {
		return core.Customer{}, err
	}
	return cust, nil
}

// Update merges p into the customer with the given id. Unknown ids are
// ignored.
func (c *Customers) Update(ctx context.Context, id string, p core.CustomerPatch) error {
	return c.slot.mutate(ctx, func(cur []core.Customer) ([]core.Customer, error) {
		i := slices.IndexFunc(cur, func(x core.Customer) bool { return x.ID == id })
		if i < 0 {
			return nil, errUnchanged
		}
		updated := p.Apply(cur[i])
		if err := updated.Validate(); err != nil {
			return nil, err
		}
		renamed := foldName(updated.Name) != foldName(cur[i].Name)
		reactivated := updated.IsActive() && !cur[i].IsActive()
		if (renamed || reactivated) && updated.IsActive() && activeNameTaken(cur, updated.Name, id) {
			return nil, core.ErrDuplicateCustomer
		}
		next := slices.Clone(cur)
		next[i] = updated
		return next, nil
	})
}

// MarkPaid settles the customer's debt.
func (c *Customers) MarkPaid(ctx context.Context, id string) error {
	paid := core.StatusPaid
	return c.Update(ctx, id, core.CustomerPatch{Status: &paid})
}

// Remove hard-deletes the customer. Transactions that reference it are kept.
func (c *Customers) Remove(ctx context.Context, id string) error {
	return c.slot.mutate(ctx, func(cur []core.Customer) ([]core.Customer, error) {
		if !slices.ContainsFunc(cur, func(x core.Customer) bool { return x.ID == id }) {
			return nil, errUnchanged
		}
		return slices.DeleteFunc(slices.Clone(cur), func(x core.Customer) bool { return x.ID == id }), nil
	})
}

func (c *Customers) Get(id string) (core.Customer, bool) {
	for _, x := range c.slot.get() {
		if x.ID == id {
			return x, true
		}
	}
	return core.Customer{}, false
}

// List returns customers in insertion order.
func (c *Customers) List() []core.Customer {
	return slices.Clone(c.slot.get())
}

// Active returns the customers whose status is active.
func (c *Customers) Active() []core.Customer {
	var out []core.Customer
	for _, x := range c.slot.get() {
		if x.IsActive() {
			out = append(out, x)
		}
	}
	return out
}

// FindByName returns the first active customer whose name contains query,
// ignoring case. A blank query finds nothing.
func (c *Customers) FindByName(query string) (core.Customer, bool) {
	q := foldName(query)
	if q == "" {
		return core.Customer{}, false
	}
	for _, x := range c.slot.get() {
		if x.IsActive() && strings.Contains(foldName(x.Name), q) {
			return x, true
		}
	}
	return core.Customer{}, false
}

// ExistsByExactName reports whether an active customer other than excludeID
// has exactly this name, ignoring case.
func (c *Customers) ExistsByExactName(name, excludeID string) bool {
	return activeNameTaken(c.slot.get(), name, excludeID)
}

func activeNameTaken(customers []core.Customer, name, excludeID string) bool {
	n := foldName(name)
	for _, x := range customers {
		if x.IsActive() && x.ID != excludeID && foldName(x.Name) == n {
			return true
		}
	}
	return false
}

func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
