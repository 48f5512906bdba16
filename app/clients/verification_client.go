package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dakshininfra/purchase-api/models"
	"github.com/dakshininfra/purchase-api/purchase"
)

// VerificationStatus is the tri-state answer from the document verification
// service. The wizard treats it as a boolean gate per document type.
type VerificationStatus string

const (
	StatusValid   VerificationStatus = "VALID"
	StatusInvalid VerificationStatus = "INVALID"
	StatusError   VerificationStatus = "ERROR"
)

// VerificationClient wraps the PAN/Aadhaar/GSTIN/Passport verification
// endpoints of the backend KYC service.
type VerificationClient struct {
	BaseURL string
	L       *logrus.Logger
	H       *http.Client
}

func NewVerificationClient(l *logrus.Logger) *VerificationClient {
	return &VerificationClient{
		BaseURL: os.Getenv("VERIFICATION_API_URL"),
		L:       l,
		H:       &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	DocumentNumber string `json:"document_number"`
	Name           string `json:"name,omitempty"`
}

type verifyResponse struct {
	Status  VerificationStatus `json:"status"`
	Message string             `json:"message,omitempty"`
}

// verify posts one document to its endpoint. VALID maps to true; INVALID to
// false; ERROR (and transport failures) to false with an error so the
// handler can surface a banner instead of silently failing the check.
func (v *VerificationClient) verify(ctx context.Context, document, number, name string) (bool, error) {
	body, err := json.Marshal(verifyRequest{DocumentNumber: number, Name: name})
	if err != nil {
		return false, err
	}

	url := fmt.Sprintf("%s/verify/%s", v.BaseURL, document)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.H.Do(req)
	if err != nil {
		v.L.Errorf("[Verification] %s call failed: %v", document, err)
		return false, err
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}

	switch result.Status {
	case StatusValid:
		return true, nil
	case StatusInvalid:
		return false, nil
	default:
		return false, fmt.Errorf("verification service error for %s: %s", document, result.Message)
	}
}

// VerifyAccount runs every document check the account's user type requires
// and returns the updated flags. Documents outside the required set keep
// their zero value.
func (v *VerificationClient) VerifyAccount(ctx context.Context, acc *models.Account) (models.Verification, error) {
	var flags models.Verification
	name := acc.Info.Name + " " + acc.Info.Surname

	for _, doc := range purchase.RequiredDocuments(acc.Info.UserType) {
		var (
			ok  bool
			err error
		)
		switch doc {
		case "pan":
			ok, err = v.verify(ctx, "pan", acc.Info.PANNumber, name)
			flags.PAN = ok
		case "aadhar":
			ok, err = v.verify(ctx, "aadhar", acc.Info.AadharNumber, name)
			flags.Aadhar = ok
		case "gst":
			ok, err = v.verify(ctx, "gstin", acc.Info.GSTNumber, name)
			flags.GST = ok
		case "passport":
			ok, err = v.verify(ctx, "passport", acc.Info.PassportNumber, name)
			flags.Passport = ok
		}
		if err != nil {
			return flags, err
		}
	}
	return flags, nil
}
