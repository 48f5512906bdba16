package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakshininfra/purchase-api/models"
)

func testVerifier(t *testing.T, answers map[string]verifyResponse) (*VerificationClient, *[]string) {
	t.Helper()
	var called []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := r.URL.Path[len("/verify/"):]
		called = append(called, doc)
		w.Header().Set("Content-Type", "application/json")
		resp, ok := answers[doc]
		if !ok {
			resp = verifyResponse{Status: StatusValid}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	l := logrus.New()
	l.SetOutput(io.Discard)
	return &VerificationClient{
		BaseURL: srv.URL,
		L:       l,
		H:       &http.Client{Timeout: 5 * time.Second},
	}, &called
}

func kycAccount(userType models.UserType) *models.Account {
	return &models.Account{
		ID: "acc-1",
		Info: models.UserInfo{
			Surname:        "Raman",
			Name:           "Priya",
			UserType:       userType,
			PANNumber:      "ABCDE1234F",
			AadharNumber:   "123412341234",
			GSTNumber:      "29ABCDE1234F1Z5",
			PassportNumber: "N1234567",
		},
	}
}

func TestVerifyAccount_Individual(t *testing.T) {
	// GIVEN: a verification service that clears everything
	v, called := testVerifier(t, nil)

	// WHEN: verifying an individual holder
	flags, err := v.VerifyAccount(context.Background(), kycAccount(models.UserIndividual))
	require.NoError(t, err)

	// THEN: only pan and aadhar were checked, and both cleared
	assert.Equal(t, []string{"pan", "aadhar"}, *called)
	assert.Equal(t, models.Verification{PAN: true, Aadhar: true}, flags)
}

func TestVerifyAccount_BusinessUsesGSTIN(t *testing.T) {
	v, called := testVerifier(t, nil)
	flags, err := v.VerifyAccount(context.Background(), kycAccount(models.UserBusiness))
	require.NoError(t, err)
	assert.Equal(t, []string{"pan", "gstin"}, *called)
	assert.Equal(t, models.Verification{PAN: true, GST: true}, flags)
}

func TestVerifyAccount_InvalidDocumentIsNotAnError(t *testing.T) {
	// An INVALID answer clears nothing but is a normal outcome.
	v, _ := testVerifier(t, map[string]verifyResponse{
		"aadhar": {Status: StatusInvalid},
	})
	flags, err := v.VerifyAccount(context.Background(), kycAccount(models.UserIndividual))
	require.NoError(t, err)
	assert.Equal(t, models.Verification{PAN: true, Aadhar: false}, flags)
}

func TestVerifyAccount_ServiceErrorSurfaces(t *testing.T) {
	// GIVEN: the pan check errors out
	v, called := testVerifier(t, map[string]verifyResponse{
		"pan": {Status: StatusError, Message: "upstream timeout"},
	})

	// WHEN: verifying an individual holder
	flags, err := v.VerifyAccount(context.Background(), kycAccount(models.UserIndividual))

	// THEN: the error stops the run before the aadhar check
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
	assert.Equal(t, []string{"pan"}, *called)
	assert.Equal(t, models.Verification{}, flags)
}
