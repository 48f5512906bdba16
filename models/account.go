package models

type AccountType string

const (
	AccountPrimary AccountType = "primary"
	AccountJoint   AccountType = "joint"
)

// UserType decides which documents KYC requires for an account holder.
type UserType string

const (
	UserIndividual UserType = "individual"
	UserBusiness   UserType = "business"
	UserNRI        UserType = "nri"
)

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type BankDetails struct {
	AccountNumber string `json:"account_number" bson:"account_number"`
	IFSCCode      string `json:"ifsc_code" bson:"ifsc_code"`
	BankName      string `json:"bank_name,omitempty" bson:"bank_name,omitempty"`
	Branch        string `json:"branch,omitempty" bson:"branch,omitempty"`
}

// UserInfo is the profile collected on the user-info step. Joint holders fill
// the same form plus a relationship to the primary holder.
type UserInfo struct {
	Surname        string      `json:"surname" bson:"surname"`
	Name           string      `json:"name" bson:"name"`
	DOB            string      `json:"dob" bson:"dob"`
	Email          string      `json:"email" bson:"email"`
	Phone          string      `json:"phone" bson:"phone"`
	Occupation     string      `json:"occupation" bson:"occupation"`
	AnnualIncome   string      `json:"annual_income" bson:"annual_income"`
	UserType       UserType    `json:"user_type" bson:"user_type"`
	Relationship   string      `json:"relationship,omitempty" bson:"relationship,omitempty"`
	PresentAddress Address     `json:"present_address" bson:"present_address"`
	AccountDetails BankDetails `json:"account_details" bson:"account_details"`

	PANNumber      string `json:"pan_number,omitempty" bson:"pan_number,omitempty"`
	AadharNumber   string `json:"aadhar_number,omitempty" bson:"aadhar_number,omitempty"`
	GSTNumber      string `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
	PassportNumber string `json:"passport_number,omitempty" bson:"passport_number,omitempty"`
}

// Verification holds the per-document KYC flags set by the document
// verification service.
type Verification struct {
	PAN      bool `json:"pan" bson:"pan"`
	Aadhar   bool `json:"aadhar" bson:"aadhar"`
	GST      bool `json:"gst" bson:"gst"`
	Passport bool `json:"passport" bson:"passport"`
}

// Account is one holder in a purchase session: exactly one primary, up to
// four joint.
type Account struct {
	ID            string       `json:"id" bson:"_id,omitempty"`
	Type          AccountType  `json:"type" bson:"type"`
	Info          UserInfo     `json:"info" bson:"info"`
	TermsAccepted bool         `json:"terms_accepted" bson:"terms_accepted"`
	Verified      Verification `json:"verified" bson:"verified"`
}
