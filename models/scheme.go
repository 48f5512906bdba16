package models

type SchemeType string

const (
	SchemeSinglePayment SchemeType = "single_payment"
	SchemeInstallment   SchemeType = "installment"
)

// Scheme is immutable reference data served by the scheme catalog service.
// One scheme belongs to one project.
type Scheme struct {
	ID                       string     `json:"id" bson:"_id,omitempty"`
	ProjectID                string     `json:"project_id" bson:"project_id"`
	SchemeType               SchemeType `json:"scheme_type" bson:"scheme_type"`
	AreaSqft                 float64    `json:"area_sqft" bson:"area_sqft"`
	BookingAdvance           float64    `json:"booking_advance" bson:"booking_advance"`
	BalancePayment           float64    `json:"balance_payment" bson:"balance_payment"`
	BalancePaymentDays       int        `json:"balance_payment_days,omitempty" bson:"balance_payment_days,omitempty"`
	TotalInstallments        int        `json:"total_installments,omitempty" bson:"total_installments,omitempty"`
	MonthlyInstallmentAmount float64    `json:"monthly_installment_amount,omitempty" bson:"monthly_installment_amount,omitempty"`
	MonthlyRentalIncome      float64    `json:"monthly_rental_income" bson:"monthly_rental_income"`
	RentalStartMonth         int        `json:"rental_start_month,omitempty" bson:"rental_start_month,omitempty"`
}

type ListSchemesResponse struct {
	Schemes []Scheme `json:"schemes"`
}
