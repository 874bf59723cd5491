package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive CustomerStatus = "active"
	StatusPaid   CustomerStatus = "paid"
)

const (
	Inflow  TransactionType = "inflow"
	Outflow TransactionType = "outflow"
)

const (
	CategoryWater       ExpenseCategory = "water"
	CategoryElectricity ExpenseCategory = "electricity"
	CategoryVehicle     ExpenseCategory = "vehicle"
	CategoryFood        ExpenseCategory = "food"
	CategoryRent        ExpenseCategory = "rent"
	CategoryInternet    ExpenseCategory = "internet"
	CategoryPhone       ExpenseCategory = "phone"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories lists the closed set of expense categories in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryWater,
	CategoryElectricity,
	CategoryVehicle,
	CategoryFood,
	CategoryRent,
	CategoryInternet,
	CategoryPhone,
	CategoryOther,
}

type (
	// CustomerStatus is the stored lifecycle of a debt. Overdue is derived from
	// the due date and is never stored.
	CustomerStatus string

	TransactionType string

	ExpenseCategory string

	Customer struct {
		ID                string          `json:"id"`
		Name              string          `json:"name"`
		Phone             string          `json:"phone"`
		TaxID             string          `json:"tax_id"`
		Address           string          `json:"address,omitempty"`
		DebtAmount        decimal.Decimal `json:"debt_amount"`
		DueDate           Date            `json:"due_date"`
		RegisteredAt      time.Time       `json:"registered_at"`
		DailyInterestRate decimal.Decimal `json:"daily_interest_rate"`
		Status            CustomerStatus  `json:"status"`
		Notes             string          `json:"notes,omitempty"`
		PurchasedItem     string          `json:"purchased_item,omitempty"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		CustomerID  string          `json:"customer_id,omitempty"`
		Type        TransactionType `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		OccurredAt  time.Time       `json:"occurred_at"`
		Category    string          `json:"category,omitempty"`
	}

	Expense struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Category  ExpenseCategory `json:"category"`
		Amount    decimal.Decimal `json:"amount"`
		Date      Date            `json:"date"`
		Note      string          `json:"note,omitempty"`
		Recurring bool            `json:"recurring,omitempty"`
	}

	// AppConfig is the singleton business configuration.
	AppConfig struct {
		BusinessName              string          `json:"business_name"`
		BusinessPhone             string          `json:"business_phone"`
		CollectionMessageTemplate string          `json:"collection_message_template"`
		DefaultDailyInterestRate  decimal.Decimal `json:"default_daily_interest_rate"`
		NotificationsEnabled      bool            `json:"notifications_enabled"`
	}
)

var (
	ErrEmptyName         = errors.New("empty name")
	ErrEmptyDescription  = errors.New("empty description")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNegativeRate      = errors.New("negative interest rate")
	ErrInvalidStatus     = errors.New("invalid customer status")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidCategory   = errors.New("invalid expense category")
	ErrDuplicateCustomer = errors.New("an active customer with this name already exists")
	ErrNotFound          = errors.New("not found")
	ErrTextTooLong       = errors.New("text too long")
)

const maxTextLen = 200

// DefaultCollectionMessage is the template used until the business sets its own.
const DefaultCollectionMessage = "Olá {nome}, estamos lembrando que sua dívida de {valor} venceu em {data}. Podemos agendar o pagamento?"

// DefaultAppConfig returns the configuration applied when none was persisted.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		BusinessName:              "Minha Loja",
		BusinessPhone:             "",
		CollectionMessageTemplate: DefaultCollectionMessage,
		DefaultDailyInterestRate:  decimal.NewFromInt(2),
		NotificationsEnabled:      true,
	}
}

func (s CustomerStatus) Valid() bool {
	return s == StatusActive || s == StatusPaid
}

func (t TransactionType) Valid() bool {
	return t == Inflow || t == Outflow
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// IsActive reports whether the customer still owes money.
func (c Customer) IsActive() bool {
	return c.Status == StatusActive
}

// IsOverdue reports whether the customer's due date has passed at asOf.
func (c Customer) IsOverdue(asOf time.Time) bool {
	return IsOverdue(c.DueDate, asOf)
}

func (c Customer) Validate() error {
	if err := validateText(c.Name, ErrEmptyName); err != nil {
		return err
	}
	if c.DebtAmount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := c.DueDate.Validate(); err != nil {
		return fmt.Errorf("invalid due date: %w", err)
	}
	if c.DailyInterestRate.IsNegative() {
		return ErrNegativeRate
	}
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateText(t.Description, ErrEmptyDescription)
}

func (e Expense) Validate() error {
	if err := validateText(e.Name, ErrEmptyName); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if err := e.Date.Validate(); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	return nil
}

func (a AppConfig) Validate() error {
	if err := validateText(a.BusinessName, ErrEmptyName); err != nil {
		return err
	}
	if a.DefaultDailyInterestRate.IsNegative() {
		return ErrNegativeRate
	}
	return nil
}

func validateText(s string, empty error) error {
	if strings.TrimSpace(s) == "" {
		return empty
	}
	if len(s) > maxTextLen {
		return fmt.Errorf("%w (max %d characters)", ErrTextTooLong, maxTextLen)
	}
	return nil
}
