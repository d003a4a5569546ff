package transaction

import (
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/shopspring/decimal"
)

// Type separates money coming in from money going out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Amount is a currency value. It is written as a JSON number and read from
// either a number or a string.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses a decimal string such as "245.50".
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// MustAmount is NewAmount for literals.
func MustAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Transaction is a ledger line in the remote transactions collection.
type Transaction struct {
	ID          resource.ID `json:"id"`
	Description string      `json:"description"`
	Type        Type        `json:"type"`
	Amount      Amount      `json:"amount"`
	Date        civil.Date  `json:"date"`
}

func (t Transaction) EntityID() resource.ID {
	return t.ID
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount.Decimal
}

// Draft is the create payload.
type Draft struct {
	Description string     `json:"description" validate:"notblank"`
	Type        Type       `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Amount      Amount     `json:"amount"`
	Date        civil.Date `json:"date"`
}

func (d Draft) Validate() error {
	return ValidateDraft(d)
}

func (d Draft) Placeholder(id resource.ID) Transaction {
	return Transaction{
		ID:          id,
		Description: d.Description,
		Type:        d.Type,
		Amount:      d.Amount,
		Date:        d.Date,
	}
}

// Patch is unused: the transactions collection has no update.
type Patch = resource.NoPatch[Transaction]
