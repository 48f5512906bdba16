package client

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/dakshininfra/purchase-api/models"
	"github.com/dakshininfra/purchase-api/purchase"
)

type TwilioClient struct {
	Client *twilio.RestClient
	L      *logrus.Logger
	number string
}

func NewTwilioClient(l *logrus.Logger) *TwilioClient {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioNumber := os.Getenv("TWILIO_PHONE_NUMBER")
	return &TwilioClient{
		Client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		L:      l,
		number: twilioNumber,
	}
}

func (t *TwilioClient) SendSMS(to, body string) (*models.SendSMSResponse, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.number)
	params.SetBody(body)

	_, err := t.Client.Api.CreateMessage(params)
	if err != nil {
		t.L.Errorf("Error sending SMS: %s", err.Error())
		return &models.SendSMSResponse{Successful: false, ErrorMessage: err.Error()}, err
	}
	return &models.SendSMSResponse{Successful: true, ErrorMessage: "none"}, nil
}

// SendBookingConfirmation texts the primary holder once the gateway redirect
// lands. A failed send is reported but must never fail the purchase.
func (t *TwilioClient) SendBookingConfirmation(to, orderID string, units int, amount decimal.Decimal) (*models.SendSMSResponse, error) {
	body := fmt.Sprintf(
		"Your booking of %d unit(s) is confirmed. Payment of %s received. Order reference: %s.",
		units, purchase.FormatINR(amount), orderID,
	)
	return t.SendSMS(to, body)
}
