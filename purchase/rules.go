package purchase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dakshininfra/purchase-api/models"
)

// Sentinel errors for amount validation, usable with errors.Is. Each failure
// surfaces its own message rather than a generic "invalid amount".
var (
	ErrAmountTooLow         = errors.New("amount is below the minimum for this plan")
	ErrAmountTooHigh        = errors.New("amount exceeds the per-transaction limit")
	ErrAmountExceedsBalance = errors.New("amount exceeds the outstanding balance")
	ErrNotWholeNumber       = errors.New("amount must be a whole number")
	ErrInstallmentMismatch  = errors.New("installment plans accept only the fixed installment amount")

	ErrProfileIncomplete = errors.New("profile has missing required fields")
	ErrKYCIncomplete     = errors.New("document verification incomplete")
	ErrTermsNotAccepted  = errors.New("terms and conditions not accepted")
)

type AmountCode string

const (
	AmountTooLow              AmountCode = "AmountTooLow"
	AmountTooHigh             AmountCode = "AmountTooHigh"
	AmountExceedsBalance      AmountCode = "AmountExceedsBalance"
	AmountNotWhole            AmountCode = "NotWholeNumber"
	AmountInstallmentMismatch AmountCode = "InstallmentMismatch"
)

// AmountError reports why a payment amount was rejected, carrying the bound
// that was violated so callers can render a precise message.
type AmountError struct {
	Code   AmountCode
	Amount decimal.Decimal
	Limit  decimal.Decimal
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%s: amount %s, limit %s", e.Code, e.Amount, e.Limit)
}

func (e *AmountError) Unwrap() error {
	switch e.Code {
	case AmountTooLow:
		return ErrAmountTooLow
	case AmountTooHigh:
		return ErrAmountTooHigh
	case AmountExceedsBalance:
		return ErrAmountExceedsBalance
	case AmountNotWhole:
		return ErrNotWholeNumber
	case AmountInstallmentMismatch:
		return ErrInstallmentMismatch
	}
	return nil
}

// ValidatePaymentAmount gates the plan-selection step. Order of checks
// matters: whole-number first, then the installment lock, then bounds.
func ValidatePaymentAmount(p *PlanSelection) error {
	amount := p.PaymentAmount

	if !amount.IsInteger() {
		return &AmountError{Code: AmountNotWhole, Amount: amount}
	}
	if p.Type == PlanInstallment {
		if !amount.Equal(p.MonthlyAmount) {
			return &AmountError{Code: AmountInstallmentMismatch, Amount: amount, Limit: p.MonthlyAmount}
		}
		// the ceiling binds even when the fixed installment itself is too big
		if amount.GreaterThan(PaymentCeiling) {
			return &AmountError{Code: AmountTooHigh, Amount: amount, Limit: PaymentCeiling}
		}
		return nil
	}
	if min := p.MinimumPayment(); amount.LessThan(min) || !amount.IsPositive() {
		return &AmountError{Code: AmountTooLow, Amount: amount, Limit: min}
	}
	if amount.GreaterThan(PaymentCeiling) {
		return &AmountError{Code: AmountTooHigh, Amount: amount, Limit: PaymentCeiling}
	}
	if balance := p.OutstandingBalance(); amount.GreaterThan(balance) {
		return &AmountError{Code: AmountExceedsBalance, Amount: amount, Limit: balance}
	}
	return nil
}

// FieldError names one missing required field on one account's profile.
type FieldError struct {
	AccountID string
	Field     string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("account %s: required field %q is empty", e.AccountID, e.Field)
}

// ProfileError aggregates every missing field across the session's accounts.
type ProfileError struct {
	Missing []FieldError
}

func (e *ProfileError) Error() string {
	fields := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		fields[i] = f.Field
	}
	return fmt.Sprintf("%d required fields missing: %s", len(e.Missing), strings.Join(fields, ", "))
}

func (e *ProfileError) Unwrap() error { return ErrProfileIncomplete }

// ValidateUserInfo gates the user-info step: every required field must be
// non-empty on every account, primary and joint alike.
func ValidateUserInfo(accounts []*models.Account) error {
	var missing []FieldError
	for _, acc := range accounts {
		info := acc.Info
		required := []struct {
			field string
			value string
		}{
			{"surname", info.Surname},
			{"name", info.Name},
			{"dob", info.DOB},
			{"email", info.Email},
			{"phone", info.Phone},
			{"occupation", info.Occupation},
			{"annual_income", info.AnnualIncome},
			{"present_address.street", info.PresentAddress.Street},
			{"present_address.city", info.PresentAddress.City},
			{"account_details.account_number", info.AccountDetails.AccountNumber},
			{"account_details.ifsc_code", info.AccountDetails.IFSCCode},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				missing = append(missing, FieldError{AccountID: acc.ID, Field: r.field})
			}
		}
	}
	if len(missing) > 0 {
		return &ProfileError{Missing: missing}
	}
	return nil
}

// RequiredDocuments lists the KYC documents an account holder must clear,
// keyed off the declared user type.
func RequiredDocuments(t models.UserType) []string {
	switch t {
	case models.UserBusiness:
		return []string{"pan", "gst"}
	case models.UserNRI:
		return []string{"passport"}
	default:
		return []string{"pan", "aadhar"}
	}
}

// KYCError reports which documents are still unverified for one account.
type KYCError struct {
	AccountID string
	Missing   []string
}

func (e *KYCError) Error() string {
	return fmt.Sprintf("account %s: unverified documents: %s", e.AccountID, strings.Join(e.Missing, ", "))
}

func (e *KYCError) Unwrap() error { return ErrKYCIncomplete }

func documentVerified(v models.Verification, doc string) bool {
	switch doc {
	case "pan":
		return v.PAN
	case "aadhar":
		return v.Aadhar
	case "gst":
		return v.GST
	case "passport":
		return v.Passport
	}
	return false
}

// ValidateKYC gates the kyc step: every account must have all documents for
// its user type verified and its terms accepted. The flags themselves are set
// by the document verification service; this is a pure predicate over them.
func ValidateKYC(accounts []*models.Account) error {
	for _, acc := range accounts {
		var missing []string
		for _, doc := range RequiredDocuments(acc.Info.UserType) {
			if !documentVerified(acc.Verified, doc) {
				missing = append(missing, doc)
			}
		}
		if len(missing) > 0 {
			return &KYCError{AccountID: acc.ID, Missing: missing}
		}
		if !acc.TermsAccepted {
			return fmt.Errorf("account %s: %w", acc.ID, ErrTermsNotAccepted)
		}
	}
	return nil
}
