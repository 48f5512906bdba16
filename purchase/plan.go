// Package purchase implements the unit-purchase flow: pricing derivation,
// step validation, and the wizard state machine. Everything in this package
// is session-scoped and side-effect free; persistence and gateway calls live
// with the handlers and clients.
package purchase

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dakshininfra/purchase-api/models"
)

type PlanType string

const (
	PlanSingle      PlanType = "single"
	PlanInstallment PlanType = "installment"
)

// PaymentCeiling is the per-transaction gateway limit in rupees.
var PaymentCeiling = decimal.NewFromInt(1000000)

var (
	ErrUnknownSchemeType = errors.New("unknown scheme type")
	ErrInvalidUnits      = errors.New("units must be a positive integer")
)

// PlanSelection is the priced plan derived from a scheme and a unit count.
// It is recomputed whenever units change and discarded on wizard reset.
// Monetary fields are per unit; PaymentAmount is per transaction and does
// not scale with units.
type PlanSelection struct {
	PlanID          string
	Type            PlanType
	Units           int
	Area            decimal.Decimal // sqft per unit
	BookingAdvance  decimal.Decimal
	TotalInvestment decimal.Decimal // per unit
	PaymentAmount   decimal.Decimal // amount being paid now
	MonthlyAmount   decimal.Decimal // installment schemes only
	Installments    int
	RentalStart     int // months after booking
	MonthlyRental   decimal.Decimal
}

// DerivePlan computes the pricing breakdown for a scheme at the given unit
// count. Pure function of its inputs.
//
// single_payment: total investment = booking advance + balance payment,
// initial payment = booking advance.
// installment: total investment = installments x monthly amount, initial
// payment = the fixed monthly amount.
func DerivePlan(s *models.Scheme, units int) (*PlanSelection, error) {
	if units < 1 {
		return nil, ErrInvalidUnits
	}

	p := &PlanSelection{
		PlanID:        s.ID,
		Units:         units,
		Area:          decimal.NewFromFloat(s.AreaSqft),
		MonthlyRental: decimal.NewFromFloat(s.MonthlyRentalIncome),
		RentalStart:   s.RentalStartMonth,
	}

	switch s.SchemeType {
	case models.SchemeSinglePayment:
		p.Type = PlanSingle
		advance := decimal.NewFromFloat(s.BookingAdvance)
		p.BookingAdvance = advance
		p.TotalInvestment = advance.Add(decimal.NewFromFloat(s.BalancePayment))
		p.PaymentAmount = advance
	case models.SchemeInstallment:
		p.Type = PlanInstallment
		monthly := decimal.NewFromFloat(s.MonthlyInstallmentAmount)
		p.Installments = s.TotalInstallments
		p.MonthlyAmount = monthly
		p.TotalInvestment = monthly.Mul(decimal.NewFromInt(int64(s.TotalInstallments)))
		p.PaymentAmount = monthly
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchemeType, s.SchemeType)
	}

	return p, nil
}

// TotalForUnits is the "Total for N units" figure shown on the order summary.
func (p *PlanSelection) TotalForUnits() decimal.Decimal {
	return p.TotalInvestment.Mul(decimal.NewFromInt(int64(p.Units)))
}

// TotalArea is the combined area across units.
func (p *PlanSelection) TotalArea() decimal.Decimal {
	return p.Area.Mul(decimal.NewFromInt(int64(p.Units)))
}

// OutstandingBalance is the amount still owed on this selection. No prior
// payments are tracked inside the wizard, so this is the full total.
func (p *PlanSelection) OutstandingBalance() decimal.Decimal {
	return p.TotalForUnits()
}

// MinimumPayment is the floor for a custom payment amount: the booking
// advance for single-payment schemes, the fixed installment otherwise.
func (p *PlanSelection) MinimumPayment() decimal.Decimal {
	if p.Type == PlanInstallment {
		return p.MonthlyAmount
	}
	return p.BookingAdvance
}

// WithPaymentAmount returns a copy carrying a custom payment amount. The
// amount is intentionally not validated here; ValidatePaymentAmount gates the
// wizard transition. Installment plans have a fixed amount and refuse any
// other value.
func (p *PlanSelection) WithPaymentAmount(amount decimal.Decimal) (*PlanSelection, error) {
	if p.Type == PlanInstallment && !amount.Equal(p.MonthlyAmount) {
		return nil, &AmountError{Code: AmountInstallmentMismatch, Amount: amount, Limit: p.MonthlyAmount}
	}
	q := *p
	q.PaymentAmount = amount
	return &q, nil
}
