package core

import "github.com/shopspring/decimal"

// Drafts carry the caller-supplied fields of a new record. Identity, creation
// timestamps and default status are assigned by the store.
type (
	CustomerDraft struct {
		Name              string
		Phone             string
		TaxID             string
		Address           string
		DebtAmount        decimal.Decimal
		DueDate           Date
		DailyInterestRate decimal.Decimal
		Notes             string
		PurchasedItem     string
	}

	TransactionDraft struct {
		CustomerID  string
		Type        TransactionType
		Amount      decimal.Decimal
		Description string
		Category    string
	}

	ExpenseDraft struct {
		Name      string
		Category  ExpenseCategory
		Amount    decimal.Decimal
		Date      Date
		Note      string
		Recurring bool
	}
)

// Patches are shallow merges: a nil field leaves the stored value untouched.
type (
	CustomerPatch struct {
		Name              *string
		Phone             *string
		TaxID             *string
		Address           *string
		DebtAmount        *decimal.Decimal
		DueDate           *Date
		DailyInterestRate *decimal.Decimal
		Status            *CustomerStatus
		Notes             *string
		PurchasedItem     *string
	}

	TransactionPatch struct {
		CustomerID  *string
		Type        *TransactionType
		Amount      *decimal.Decimal
		Description *string
		Category    *string
	}

	ExpensePatch struct {
		Name      *string
		Category  *ExpenseCategory
		Amount    *decimal.Decimal
		Date      *Date
		Note      *string
		Recurring *bool
	}

	AppConfigPatch struct {
		BusinessName              *string
		BusinessPhone             *string
		CollectionMessageTemplate *string
		DefaultDailyInterestRate  *decimal.Decimal
		NotificationsEnabled      *bool
	}
)

func (d CustomerDraft) Customer() Customer {
	return Customer{
		Name:              d.Name,
		Phone:             d.Phone,
		TaxID:             d.TaxID,
		Address:           d.Address,
		DebtAmount:        d.DebtAmount,
		DueDate:           d.DueDate,
		DailyInterestRate: d.DailyInterestRate,
		Status:            StatusActive,
		Notes:             d.Notes,
		PurchasedItem:     d.PurchasedItem,
	}
}

func (d TransactionDraft) Transaction() Transaction {
	return Transaction{
		CustomerID:  d.CustomerID,
		Type:        d.Type,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
	}
}

func (d ExpenseDraft) Expense() Expense {
	return Expense{
		Name:      d.Name,
		Category:  d.Category,
		Amount:    d.Amount,
		Date:      d.Date,
		Note:      d.Note,
		Recurring: d.Recurring,
	}
}

func (p CustomerPatch) Apply(c Customer) Customer {
	set(&c.Name, p.Name)
	set(&c.Phone, p.Phone)
	set(&c.TaxID, p.TaxID)
	set(&c.Address, p.Address)
	set(&c.DebtAmount, p.DebtAmount)
	set(&c.DueDate, p.DueDate)
	set(&c.DailyInterestRate, p.DailyInterestRate)
	set(&c.Status, p.Status)
	set(&c.Notes, p.Notes)
	set(&c.PurchasedItem, p.PurchasedItem)
	return c
}

func (p TransactionPatch) Apply(t Transaction) Transaction {
	set(&t.CustomerID, p.CustomerID)
	set(&t.Type, p.Type)
	set(&t.Amount, p.Amount)
	set(&t.Description, p.Description)
	set(&t.Category, p.Category)
	return t
}

func (p ExpensePatch) Apply(e Expense) Expense {
	set(&e.Name, p.Name)
	set(&e.Category, p.Category)
	set(&e.Amount, p.Amount)
	set(&e.Date, p.Date)
	set(&e.Note, p.Note)
	set(&e.Recurring, p.Recurring)
	return e
}

func (p AppConfigPatch) Apply(a AppConfig) AppConfig {
	set(&a.BusinessName, p.BusinessName)
	set(&a.BusinessPhone, p.BusinessPhone)
	set(&a.CollectionMessageTemplate, p.CollectionMessageTemplate)
	set(&a.DefaultDailyInterestRate, p.DefaultDailyInterestRate)
	set(&a.NotificationsEnabled, p.NotificationsEnabled)
	return a
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
