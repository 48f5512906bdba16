package purchase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakshininfra/purchase-api/models"
)

func planWithAmount(t *testing.T, s *models.Scheme, units int, amount int64) *PlanSelection {
	t.Helper()
	p, err := DerivePlan(s, units)
	require.NoError(t, err)
	p.PaymentAmount = decimal.NewFromInt(amount)
	return p
}

func TestValidatePaymentAmount_SinglePayment(t *testing.T) {
	// Scheme: advance 1,00,000, total 7,50,000 per unit.
	tests := []struct {
		name    string
		units   int
		amount  int64
		wantErr error
	}{
		{"minimum passes", 1, 100000, nil},
		{"above minimum passes", 1, 500000, nil},
		{"full balance passes", 1, 750000, nil},
		{"zero", 1, 0, ErrAmountTooLow},
		{"below minimum", 1, 99999, ErrAmountTooLow},
		{"over gateway ceiling", 2, 1000001, ErrAmountTooHigh},
		{"over one-unit balance", 1, 800000, ErrAmountExceedsBalance},
		{"ceiling exactly", 2, 1000000, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := planWithAmount(t, singlePaymentScheme(), tc.units, tc.amount)
			err := ValidatePaymentAmount(p)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePaymentAmount_CeilingBeforeBalance(t *testing.T) {
	// GIVEN: one unit with 7,50,000 outstanding
	// WHEN: the amount breaks both the ceiling and the balance
	p := planWithAmount(t, singlePaymentScheme(), 1, 1200000)
	err := ValidatePaymentAmount(p)

	// THEN: the ceiling violation is the one reported
	assert.ErrorIs(t, err, ErrAmountTooHigh)
}

func TestValidatePaymentAmount_ExceedsBalance(t *testing.T) {
	// A cheap scheme keeps the balance below the gateway ceiling.
	s := singlePaymentScheme()
	s.BookingAdvance = 50000
	s.BalancePayment = 150000
	p := planWithAmount(t, s, 1, 250000)
	err := ValidatePaymentAmount(p)
	assert.ErrorIs(t, err, ErrAmountExceedsBalance)

	var ae *AmountError
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Limit.Equal(decimal.NewFromInt(200000)))
}

func TestValidatePaymentAmount_NotWholeNumber(t *testing.T) {
	p, err := DerivePlan(singlePaymentScheme(), 1)
	require.NoError(t, err)
	p.PaymentAmount = decimal.NewFromFloat(100000.50)
	assert.ErrorIs(t, ValidatePaymentAmount(p), ErrNotWholeNumber)
}

func TestValidatePaymentAmount_Installment(t *testing.T) {
	p := planWithAmount(t, installmentScheme(), 1, 25000)
	assert.NoError(t, ValidatePaymentAmount(p))

	p.PaymentAmount = decimal.NewFromInt(50000)
	assert.ErrorIs(t, ValidatePaymentAmount(p), ErrInstallmentMismatch)
}

func TestValidatePaymentAmount_InstallmentOverCeiling(t *testing.T) {
	// GIVEN: catalog data whose fixed installment exceeds the gateway limit
	s := installmentScheme()
	s.MonthlyInstallmentAmount = 1200000
	p, err := DerivePlan(s, 1)
	require.NoError(t, err)

	// WHEN: validating the derived amount, which matches the installment
	err = ValidatePaymentAmount(p)

	// THEN: the ceiling still binds
	assert.ErrorIs(t, err, ErrAmountTooHigh)
	var ae *AmountError
	require.ErrorAs(t, err, &ae)
	assert.True(t, ae.Limit.Equal(PaymentCeiling))
}

func TestAmountError_CarriesBound(t *testing.T) {
	p := planWithAmount(t, singlePaymentScheme(), 1, 5000)
	err := ValidatePaymentAmount(p)

	var ae *AmountError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AmountTooLow, ae.Code)
	assert.True(t, ae.Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, ae.Limit.Equal(decimal.NewFromInt(100000)))
}

func completeInfo() models.UserInfo {
	return models.UserInfo{
		Surname:      "Raman",
		Name:         "Priya",
		DOB:          "1988-04-12",
		Email:        "priya@example.com",
		Phone:        "+919812345678",
		Occupation:   "architect",
		AnnualIncome: "2400000",
		UserType:     models.UserIndividual,
		PresentAddress: models.Address{
			Street: "14 MG Road",
			City:   "Bengaluru",
		},
		AccountDetails: models.BankDetails{
			AccountNumber: "00112233445566",
			IFSCCode:      "HDFC0000123",
		},
	}
}

func TestValidateUserInfo_CompleteProfilePasses(t *testing.T) {
	accounts := []*models.Account{
		{ID: "acc-1", Type: models.AccountPrimary, Info: completeInfo()},
	}
	assert.NoError(t, ValidateUserInfo(accounts))
}

func TestValidateUserInfo_ReportsEveryMissingField(t *testing.T) {
	// GIVEN: a primary with no occupation and a joint holder with no email
	primary := completeInfo()
	primary.Occupation = ""
	joint := completeInfo()
	joint.Email = "  "
	accounts := []*models.Account{
		{ID: "acc-1", Type: models.AccountPrimary, Info: primary},
		{ID: "acc-2", Type: models.AccountJoint, Info: joint},
	}

	// WHEN: validating the user-info step
	err := ValidateUserInfo(accounts)
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	// THEN: both gaps are listed with their owning account
	var pe *ProfileError
	require.ErrorAs(t, err, &pe)
	require.Len(t, pe.Missing, 2)
	assert.Equal(t, FieldError{AccountID: "acc-1", Field: "occupation"}, pe.Missing[0])
	assert.Equal(t, FieldError{AccountID: "acc-2", Field: "email"}, pe.Missing[1])
}

func TestRequiredDocuments(t *testing.T) {
	assert.Equal(t, []string{"pan", "aadhar"}, RequiredDocuments(models.UserIndividual))
	assert.Equal(t, []string{"pan", "gst"}, RequiredDocuments(models.UserBusiness))
	assert.Equal(t, []string{"passport"}, RequiredDocuments(models.UserNRI))
	// Unset user type falls back to the individual document set.
	assert.Equal(t, []string{"pan", "aadhar"}, RequiredDocuments(""))
}

func verifiedAccount(id string, userType models.UserType) *models.Account {
	info := completeInfo()
	info.UserType = userType
	return &models.Account{
		ID:            id,
		Info:          info,
		TermsAccepted: true,
		Verified:      models.Verification{PAN: true, Aadhar: true, GST: true, Passport: true},
	}
}

func TestValidateKYC_AllVerifiedPasses(t *testing.T) {
	accounts := []*models.Account{
		verifiedAccount("acc-1", models.UserIndividual),
		verifiedAccount("acc-2", models.UserBusiness),
		verifiedAccount("acc-3", models.UserNRI),
	}
	assert.NoError(t, ValidateKYC(accounts))
}

func TestValidateKYC_DocumentMatrix(t *testing.T) {
	tests := []struct {
		name        string
		userType    models.UserType
		verified    models.Verification
		wantMissing []string
	}{
		{"individual missing aadhar", models.UserIndividual, models.Verification{PAN: true}, []string{"aadhar"}},
		{"individual missing both", models.UserIndividual, models.Verification{}, []string{"pan", "aadhar"}},
		{"business missing gst", models.UserBusiness, models.Verification{PAN: true, Aadhar: true}, []string{"gst"}},
		{"nri missing passport", models.UserNRI, models.Verification{PAN: true, Aadhar: true, GST: true}, []string{"passport"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := completeInfo()
			info.UserType = tc.userType
			accounts := []*models.Account{{
				ID:            "acc-1",
				Info:          info,
				TermsAccepted: true,
				Verified:      tc.verified,
			}}
			err := ValidateKYC(accounts)
			assert.ErrorIs(t, err, ErrKYCIncomplete)

			var ke *KYCError
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, tc.wantMissing, ke.Missing)
		})
	}
}

func TestValidateKYC_TermsRequired(t *testing.T) {
	acc := verifiedAccount("acc-1", models.UserIndividual)
	acc.TermsAccepted = false
	err := ValidateKYC([]*models.Account{acc})
	assert.ErrorIs(t, err, ErrTermsNotAccepted)
}
