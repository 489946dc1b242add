package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used across the whole system,
// both for operator input and for storage.
const DateLayout = "2006-01-02"

type (
	// Contribution is a row in the zakat ledger.
	Contribution struct {
		ID     int64
		Name   string // contributor name
		Kind   string // free-form zakat kind (fitrah, maal, ...)
		Amount decimal.Decimal
		Date   time.Time
	}

	// RiceType is a row in the rice master catalog. Immutable after
	// creation; transactions snapshot its price instead of referencing it.
	RiceType struct {
		ID         int64
		Name       string
		PricePerKg decimal.Decimal
	}

	// Transaction records a rice distribution against a contribution.
	// TotalPrice is fixed at creation time and never recomputed, even if
	// the rice type's catalog price changes later.
	Transaction struct {
		ID             int64
		ContributionID int64
		RiceTypeID     int64
		QuantityKg     decimal.Decimal
		TotalPrice     decimal.Decimal
		Date           time.Time
	}

	// TransactionView is the denormalized join of a transaction with its
	// contribution and rice type, for display.
	TransactionView struct {
		ID               int64
		ContributorName  string
		ContributionKind string
		RiceTypeName     string
		QuantityKg       decimal.Decimal
		TotalPrice       decimal.Decimal
		Date             time.Time
	}

	// TransactionInput carries the operator-supplied fields of a new
	// transaction, before validation and total computation.
	TransactionInput struct {
		ContributionID int64
		RiceTypeID     int64
		QuantityKg     decimal.Decimal
		Date           time.Time
	}
)

var (
	ErrContributionNotFound = errors.New("contribution not found")
	ErrRiceTypeNotFound     = errors.New("rice type not found")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidPrice         = errors.New("price per kg cannot be negative")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidReference     = errors.New("reference id must be positive")
	ErrEmptyName            = errors.New("empty name")
	ErrEmptyKind            = errors.New("empty zakat kind")
)

// ParseDate parses an operator-supplied calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (c Contribution) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Kind) == "" {
		return ErrEmptyKind
	}
	if !c.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if c.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (rt RiceType) Validate() error {
	if strings.TrimSpace(rt.Name) == "" {
		return ErrEmptyName
	}
	if rt.PricePerKg.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Validate rejects malformed input before any store lookup happens.
// Zero and negative quantities are refused up front: a distribution of
// nothing has no meaning, so the recorder never reaches the stores for one.
func (in TransactionInput) Validate() error {
	if in.ContributionID <= 0 || in.RiceTypeID <= 0 {
		return ErrInvalidReference
	}
	if !in.QuantityKg.IsPositive() {
		return ErrInvalidQuantity
	}
	if in.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
