package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentOrderRequest is the payload sent to the payment gateway's order API.
type PaymentOrderRequest struct {
	OrderID        string   `json:"order_id,omitempty"`
	UnitNumber     string   `json:"unit_number"`
	OrderAmount    float64  `json:"order_amount"`
	OrderCurrency  string   `json:"order_currency"`
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"`
	CustomerPhone  string   `json:"customer_phone"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
	ReturnURL      string   `json:"return_url,omitempty"`
}

// PaymentOrderResponse carries the session id the checkout widget is opened with.
type PaymentOrderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

// CheckoutConfig is handed to the hosting page to launch the external
// checkout widget. Completion is reported back via browser redirect.
type CheckoutConfig struct {
	Mode             string `json:"mode"`
	PaymentSessionID string `json:"payment_session_id"`
	RedirectTarget   string `json:"redirect_target"`
}

type OrderStatus string

const (
	OrderInitiated OrderStatus = "initiated"
	OrderConfirmed OrderStatus = "confirmed"
)

// PurchaseOrder is the persisted record of a completed (or initiated) unit
// purchase.
type PurchaseOrder struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID        string             `json:"session_id" bson:"session_id"`
	OrderID          string             `json:"order_id" bson:"order_id"`
	PaymentSessionID string             `json:"payment_session_id" bson:"payment_session_id"`
	SchemeID         string             `json:"scheme_id" bson:"scheme_id"`
	UnitNumber       string             `json:"unit_number" bson:"unit_number"`
	Units            int                `json:"units" bson:"units"`
	Amount           float64            `json:"amount" bson:"amount"`
	Currency         string             `json:"currency" bson:"currency"`
	CustomerEmail    string             `json:"customer_email" bson:"customer_email"`
	CustomerPhone    string             `json:"customer_phone" bson:"customer_phone"`
	Status           OrderStatus        `json:"status" bson:"status"`
	UpdatedAt        time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

type SendSMSResponse struct {
	Successful   bool   `json:"successful"`
	ErrorMessage string `json:"error_message"`
}
