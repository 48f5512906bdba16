package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	client "github.com/dakshininfra/purchase-api/app/clients"
	"github.com/dakshininfra/purchase-api/models"
	"github.com/dakshininfra/purchase-api/purchase"
)

func planView(p *purchase.PlanSelection) fiber.Map {
	if p == nil {
		return nil
	}
	return fiber.Map{
		"plan_id":                   p.PlanID,
		"type":                      p.Type,
		"units":                     p.Units,
		"area_sqft":                 p.Area.String(),
		"total_area_sqft":           p.TotalArea().String(),
		"booking_advance":           p.BookingAdvance.String(),
		"total_investment":          p.TotalInvestment.String(),
		"total_for_units":           p.TotalForUnits().String(),
		"total_for_units_formatted": purchase.FormatINR(p.TotalForUnits()),
		"payment_amount":            p.PaymentAmount.String(),
		"payment_amount_formatted":  purchase.FormatINR(p.PaymentAmount),
		"payment_amount_in_words":   purchase.AmountInWords(p.PaymentAmount.IntPart()),
		"monthly_amount":            p.MonthlyAmount.String(),
		"installments":              p.Installments,
		"rental_start_month":        p.RentalStart,
		"monthly_rental":            p.MonthlyRental.String(),
	}
}

func sessionView(s *purchase.Session) fiber.Map {
	w := s.Wizard
	view := fiber.Map{
		"id":          s.ID,
		"unit_number": s.UnitNumber(),
		"step":        w.Step().String(),
		"plan":        planView(w.Plan()),
		"accounts":    w.Accounts(),
	}
	// the forward control is disabled, not errored, while a rule fails
	if err := w.CanAdvance(); err != nil {
		view["can_advance"] = false
		view["blocked_by"] = err.Error()
	} else {
		view["can_advance"] = true
	}
	return view
}

func getSession(c *fiber.Ctx, store *purchase.Store) (*purchase.Session, error) {
	s, ok := store.Get(c.Params("id"))
	if !ok {
		return nil, FiberJsonResponse(c, fiber.StatusNotFound, "error", "purchase session not found or expired", nil)
	}
	return s, nil
}

// @Summary Start a purchase session.
// @Description open a new purchase wizard at the plan-selection step with the primary account created.
// @Tags purchase
// @Produce json
// @Success 201 {object} purchase.Session
// @Router /api/purchase/sessions [post]
func StartPurchase(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s := store.Create(c.Get("X-Auth-Token"))
		return FiberJsonResponse(c, fiber.StatusCreated, "success", "purchase session started", sessionView(s))
	}
}

// @Summary Get a purchase session.
// @Description fetch the wizard state: current step, derived plan and account holders.
// @Tags purchase
// @Param id path string true "Session ID"
// @Produce json
// @Success 200 {object} purchase.Session
// @Router /api/purchase/sessions/:id [get]
func GetPurchaseSession(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "purchase session", sessionView(s))
	}
}

// @Summary Abandon a purchase session.
// @Description drop the wizard; closing the payment modal lands here. Dispatched gateway requests are not cancelled.
// @Tags purchase
// @Param id path string true "Session ID"
// @Produce json
// @Success 200
// @Router /api/purchase/sessions/:id [delete]
func AbandonPurchase(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		store.Delete(c.Params("id"))
		return FiberJsonResponse(c, fiber.StatusOK, "success", "purchase session abandoned", nil)
	}
}

type SelectPlanRequest struct {
	SchemeID      string `json:"scheme_id"`
	UnitNumber    string `json:"unit_number"`
	Units         int    `json:"units"`
	PaymentAmount string `json:"payment_amount,omitempty"`
}

// @Summary Select a plan.
// @Description derive the pricing breakdown for a scheme and unit count, with an optional custom payment amount.
// @Tags purchase
// @Accept json
// @Param id path string true "Session ID"
// @Param plan body SelectPlanRequest true "Scheme, units and optional custom amount"
// @Produce json
// @Success 200 {object} purchase.PlanSelection
// @Router /api/purchase/sessions/:id/plan [put]
func SelectPlan(h *Handler, store *purchase.Store, schemeUrl string) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}

		var input SelectPlanRequest
		if err = c.BodyParser(&input); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", err.Error())
		}

		scheme, err := catalogGetScheme(h, fmt.Sprintf("%s/schemes/%s", schemeUrl, input.SchemeID))
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadGateway, "error", "failed fetching scheme", err.Error())
		}

		plan, err := purchase.DerivePlan(scheme, input.Units)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid plan selection", err.Error())
		}

		if input.PaymentAmount != "" {
			amount, err := purchase.ParseAmount(input.PaymentAmount)
			if err != nil {
				return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "invalid payment amount", err.Error())
			}
			plan, err = plan.WithPaymentAmount(amount)
			if err != nil {
				return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "payment amount rejected", err.Error())
			}
		}

		if err = s.Wizard.SetPlan(plan); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "cannot change plan at this step", err.Error())
		}
		s.SetUnitNumber(input.UnitNumber)

		return FiberJsonResponse(c, fiber.StatusOK, "success", "plan selected", sessionView(s))
	}
}

// @Summary Advance the wizard.
// @Description move one step forward if the current step's validation rules pass.
// @Tags purchase
// @Param id path string true "Session ID"
// @Produce json
// @Success 200
// @Router /api/purchase/sessions/:id/next [post]
func WizardNext(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}
		if err = s.Wizard.Next(); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "step validation failed", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "advanced", sessionView(s))
	}
}

// @Summary Step the wizard back.
// @Description move one step back, preserving entered data. A no-op at the first step.
// @Tags purchase
// @Param id path string true "Session ID"
// @Produce json
// @Success 200
// @Router /api/purchase/sessions/:id/prev [post]
func WizardPrev(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}
		if err = s.Wizard.Prev(); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "cannot step back", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "stepped back", sessionView(s))
	}
}

// @Summary Add a joint holder.
// @Description register a joint account alongside the primary holder (five holders maximum).
// @Tags purchase
// @Accept json
// @Param id path string true "Session ID"
// @Param info body models.UserInfo true "Joint holder profile"
// @Produce json
// @Success 201 {object} models.Account
// @Router /api/purchase/sessions/:id/accounts [post]
func AddJointAccount(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}

		var info models.UserInfo
		if err = c.BodyParser(&info); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", err.Error())
		}
		if info.UserType == "" {
			info.UserType = models.UserIndividual
		}

		acc := &models.Account{ID: uuid.NewString(), Info: info}
		if err = s.Wizard.AddJoint(acc); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "cannot add joint holder", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusCreated, "success", "joint holder added", acc)
	}
}

type UpdateAccountRequest struct {
	Info          models.UserInfo `json:"info"`
	TermsAccepted bool            `json:"terms_accepted"`
}

// @Summary Update an account holder.
// @Description apply form edits and the terms acceptance flag to one account.
// @Tags purchase
// @Accept json
// @Param id path string true "Session ID"
// @Param acc_id path string true "Account ID"
// @Param account body UpdateAccountRequest true "Profile and terms"
// @Produce json
// @Success 200
// @Router /api/purchase/sessions/:id/accounts/:acc_id [put]
func UpdateAccount(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}

		var input UpdateAccountRequest
		if err = c.BodyParser(&input); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", err.Error())
		}

		if err = s.Wizard.UpdateAccount(c.Params("acc_id"), input.Info, input.TermsAccepted); err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "account not found", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "account updated", sessionView(s))
	}
}

// @Summary Remove a joint holder.
// @Description remove a joint account; the primary account cannot be removed.
// @Tags purchase
// @Param id path string true "Session ID"
// @Param acc_id path string true "Account ID"
// @Produce json
// @Success 200
// @Router /api/purchase/sessions/:id/accounts/:acc_id [delete]
func RemoveAccount(store *purchase.Store) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}

		if err = s.Wizard.RemoveAccount(c.Params("acc_id")); err != nil {
			status := fiber.StatusBadRequest
			if errors.Is(err, purchase.ErrAccountNotFound) {
				status = fiber.StatusNotFound
			}
			return FiberJsonResponse(c, status, "error", "cannot remove account", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "account removed", sessionView(s))
	}
}

// @Summary Verify an account's KYC documents.
// @Description run the document verification service for the documents the account's user type requires.
// @Tags purchase
// @Param id path string true "Session ID"
// @Param acc_id path string true "Account ID"
// @Produce json
// @Success 200 {object} models.Verification
// @Router /api/purchase/sessions/:id/kyc/:acc_id [post]
func VerifyAccountDocuments(store *purchase.Store, vc *client.VerificationClient) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}

		acc, ok := s.Wizard.Account(c.Params("acc_id"))
		if !ok {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "account not found", nil)
		}

		flags, err := vc.VerifyAccount(c.Context(), acc)
		// record whatever cleared before surfacing the failure
		_ = s.Wizard.SetVerified(acc.ID, flags)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusBadGateway, "error", "document verification failed", err.Error())
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "documents verified", flags)
	}
}
