package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"crediario/internal/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Amounts are compared as floats by numeric rules like gte and gt.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if a, ok := f.Interface().(Amount); ok {
			return a.InexactFloat64()
		}
		return nil
	}, Amount{})
	return v
}

// Amount accepts a JSON number or a string in either "1234.56" or
// "1.234,56" notation.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	d, err := core.ParseAmount(s)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

func amountPtr(a *Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	return &a.Decimal
}

type createCustomerRequest struct {
	Name              string    `json:"name" validate:"required,max=200"`
	Phone             string    `json:"phone" validate:"max=30"`
	TaxID             string    `json:"tax_id" validate:"max=20"`
	Address           string    `json:"address" validate:"max=200"`
	DebtAmount        Amount    `json:"debt_amount" validate:"gte=0"`
	DueDate           core.Date `json:"due_date"`
	DailyInterestRate *Amount   `json:"daily_interest_rate" validate:"omitempty,gte=0"`
	Notes             string    `json:"notes" validate:"max=200"`
	PurchasedItem     string    `json:"purchased_item" validate:"max=200"`
}

// draft fills the interest rate from the business default when omitted.
func (req createCustomerRequest) draft(defaultRate decimal.Decimal) core.CustomerDraft {
	rate := defaultRate
	if req.DailyInterestRate != nil {
		rate = req.DailyInterestRate.Decimal
	}
	return core.CustomerDraft{
		Name:              sanitizeInput(req.Name),
		Phone:             sanitizeInput(req.Phone),
		TaxID:             sanitizeInput(req.TaxID),
		Address:           sanitizeInput(req.Address),
		DebtAmount:        req.DebtAmount.Decimal,
		DueDate:           req.DueDate,
		DailyInterestRate: rate,
		Notes:             sanitizeInput(req.Notes),
		PurchasedItem:     sanitizeInput(req.PurchasedItem),
	}
}

type updateCustomerRequest struct {
	Name              *string              `json:"name" validate:"omitempty,max=200"`
	Phone             *string              `json:"phone" validate:"omitempty,max=30"`
	TaxID             *string              `json:"tax_id" validate:"omitempty,max=20"`
	Address           *string              `json:"address" validate:"omitempty,max=200"`
	DebtAmount        *Amount              `json:"debt_amount" validate:"omitempty,gte=0"`
	DueDate           *core.Date           `json:"due_date"`
	DailyInterestRate *Amount              `json:"daily_interest_rate" validate:"omitempty,gte=0"`
	Status            *core.CustomerStatus `json:"status" validate:"omitempty,oneof=active paid"`
	Notes             *string              `json:"notes" validate:"omitempty,max=200"`
	PurchasedItem     *string              `json:"purchased_item" validate:"omitempty,max=200"`
}

func (req updateCustomerRequest) patch() core.CustomerPatch {
	return core.CustomerPatch{
		Name:              sanitizePtr(req.Name),
		Phone:             sanitizePtr(req.Phone),
		TaxID:             sanitizePtr(req.TaxID),
		Address:           sanitizePtr(req.Address),
		DebtAmount:        amountPtr(req.DebtAmount),
		DueDate:           req.DueDate,
		DailyInterestRate: amountPtr(req.DailyInterestRate),
		Status:            req.Status,
		Notes:             sanitizePtr(req.Notes),
		PurchasedItem:     sanitizePtr(req.PurchasedItem),
	}
}

type createTransactionRequest struct {
	CustomerID  string               `json:"customer_id" validate:"max=64"`
	Type        core.TransactionType `json:"type" validate:"required,oneof=inflow outflow"`
	Amount      Amount               `json:"amount" validate:"gt=0"`
	Description string               `json:"description" validate:"required,max=200"`
	Category    string               `json:"category" validate:"max=50"`
}

func (req createTransactionRequest) draft() core.TransactionDraft {
	return core.TransactionDraft{
		CustomerID:  strings.TrimSpace(req.CustomerID),
		Type:        req.Type,
		Amount:      req.Amount.Decimal,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
	}
}

type updateTransactionRequest struct {
	CustomerID  *string               `json:"customer_id" validate:"omitempty,max=64"`
	Type        *core.TransactionType `json:"type" validate:"omitempty,oneof=inflow outflow"`
	Amount      *Amount               `json:"amount" validate:"omitempty,gt=0"`
	Description *string               `json:"description" validate:"omitempty,max=200"`
	Category    *string               `json:"category" validate:"omitempty,max=50"`
}

func (req updateTransactionRequest) patch() core.TransactionPatch {
	return core.TransactionPatch{
		CustomerID:  req.CustomerID,
		Type:        req.Type,
		Amount:      amountPtr(req.Amount),
		Description: sanitizePtr(req.Description),
		Category:    sanitizePtr(req.Category),
	}
}

type createExpenseRequest struct {
	Name      string               `json:"name" validate:"required,max=200"`
	Category  core.ExpenseCategory `json:"category" validate:"required"`
	Amount    Amount               `json:"amount" validate:"gt=0"`
	Date      core.Date            `json:"date"`
	Note      string               `json:"note" validate:"max=200"`
	Recurring bool                 `json:"recurring"`
}

// draft dates the expense today when no date was sent.
func (req createExpenseRequest) draft(today core.Date) core.ExpenseDraft {
	date := req.Date
	if date.IsZero() {
		date = today
	}
	return core.ExpenseDraft{
		Name:      sanitizeInput(req.Name),
		Category:  req.Category,
		Amount:    req.Amount.Decimal,
		Date:      date,
		Note:      sanitizeInput(req.Note),
		Recurring: req.Recurring,
	}
}

type updateExpenseRequest struct {
	Name      *string               `json:"name" validate:"omitempty,max=200"`
	Category  *core.ExpenseCategory `json:"category"`
	Amount    *Amount               `json:"amount" validate:"omitempty,gt=0"`
	Date      *core.Date            `json:"date"`
	Note      *string               `json:"note" validate:"omitempty,max=200"`
	Recurring *bool                 `json:"recurring"`
}

func (req updateExpenseRequest) patch() core.ExpensePatch {
	return core.ExpensePatch{
		Name:      sanitizePtr(req.Name),
		Category:  req.Category,
		Amount:    amountPtr(req.Amount),
		Date:      req.Date,
		Note:      sanitizePtr(req.Note),
		Recurring: req.Recurring,
	}
}

type updateConfigRequest struct {
	BusinessName              *string `json:"business_name" validate:"omitempty,max=200"`
	BusinessPhone             *string `json:"business_phone" validate:"omitempty,max=30"`
	CollectionMessageTemplate *string `json:"collection_message_template" validate:"omitempty,max=1000"`
	DefaultDailyInterestRate  *Amount `json:"default_daily_interest_rate" validate:"omitempty,gte=0"`
	NotificationsEnabled      *bool   `json:"notifications_enabled"`
}

func (req updateConfigRequest) patch() core.AppConfigPatch {
	return core.AppConfigPatch{
		BusinessName:              sanitizePtr(req.BusinessName),
		BusinessPhone:             sanitizePtr(req.BusinessPhone),
		CollectionMessageTemplate: req.CollectionMessageTemplate,
		DefaultDailyInterestRate:  amountPtr(req.DefaultDailyInterestRate),
		NotificationsEnabled:      req.NotificationsEnabled,
	}
}
