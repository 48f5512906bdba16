package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	client "github.com/dakshininfra/purchase-api/app/clients"
	"github.com/dakshininfra/purchase-api/models"
	"github.com/dakshininfra/purchase-api/purchase"
)

type InitiatePaymentRequest struct {
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

// @Summary Initiate the payment step.
// @Description create a payment session with the gateway and return the checkout widget config.
// @Tags payment
// @Accept json
// @Param id path string true "Session ID"
// @Param payment body InitiatePaymentRequest false "Accepted payment methods"
// @Produce json
// @Success 200 {object} models.CheckoutConfig
// @Router /api/purchase/sessions/:id/payment [post]
func InitiatePayment(store *purchase.Store, gc *client.GatewayClient) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}
		w := s.Wizard

		if w.Step() != purchase.StepPayment {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "wizard is not at the payment step", w.Step().String())
		}
		plan := w.Plan()
		if plan == nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "no plan selected", nil)
		}

		var input InitiatePaymentRequest
		// body is optional
		_ = c.BodyParser(&input)

		primary := w.Accounts()[0]
		unitNumber := s.UnitNumber()
		orderReq := &models.PaymentOrderRequest{
			OrderID:        uuid.NewString(),
			UnitNumber:     unitNumber,
			OrderAmount:    plan.PaymentAmount.InexactFloat64(),
			OrderCurrency:  "INR",
			CustomerName:   primary.Info.Name + " " + primary.Info.Surname,
			CustomerEmail:  primary.Info.Email,
			CustomerPhone:  primary.Info.Phone,
			PaymentMethods: input.PaymentMethods,
		}

		ctx := c.Context()
		if err = gc.EnsureCheckout(ctx); err != nil {
			status := fiber.StatusBadGateway
			if errors.Is(err, client.ErrGatewayInit) {
				status = fiber.StatusInternalServerError
			}
			return FiberJsonResponse(c, status, "error", "payment gateway unavailable", err.Error())
		}

		orderResp, err := gc.CreateOrder(ctx, orderReq)
		if err != nil {
			if errors.Is(err, client.ErrIncompleteCustomerInfo) {
				return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "incomplete customer info", err.Error())
			}
			return FiberJsonResponse(c, fiber.StatusBadGateway, "error", "failed creating payment session", err.Error())
		}

		now := time.Now()
		s.SetOrder(&models.PurchaseOrder{
			SessionID:        s.ID,
			OrderID:          orderResp.OrderID,
			PaymentSessionID: orderResp.PaymentSessionID,
			SchemeID:         plan.PlanID,
			UnitNumber:       unitNumber,
			Units:            plan.Units,
			Amount:           plan.PaymentAmount.InexactFloat64(),
			Currency:         "INR",
			CustomerEmail:    primary.Info.Email,
			CustomerPhone:    primary.Info.Phone,
			Status:           models.OrderInitiated,
			CreatedAt:        now,
			UpdatedAt:        now,
		})

		return FiberJsonResponse(c, fiber.StatusOK, "success", "payment session created", gc.CheckoutConfig(orderResp.PaymentSessionID))
	}
}

// @Summary Confirm a completed payment.
// @Description gateway-redirect callback: move the wizard to confirmation, persist the order and text the buyer.
// @Tags payment
// @Param id path string true "Session ID"
// @Produce json
// @Success 200 {object} models.PurchaseOrder
// @Router /api/purchase/sessions/:id/payment/confirm [post]
func ConfirmPayment(h *Handler, store *purchase.Store, tc *client.TwilioClient) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		s, err := getSession(c, store)
		if err != nil {
			return err
		}
		order := s.Order()
		if order == nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "no payment was initiated for this session", nil)
		}

		// CompletePayment admits exactly one caller; a racing second confirm
		// fails here before touching the order
		if err = s.Wizard.CompletePayment(); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "cannot confirm payment", err.Error())
		}

		order.ID = primitive.NewObjectID()
		order.Status = models.OrderConfirmed
		order.UpdatedAt = time.Now()
		if _, err = h.Db.InsertOne(h.C, order); err != nil {
			h.L.Error("[OrderDB] Error persisting purchase order", "error", err)
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "failed to save purchase order", err.Error())
		}

		plan := s.Wizard.Plan()
		if tc != nil && order.CustomerPhone != "" {
			// confirmation SMS is best effort
			if _, err = tc.SendBookingConfirmation(order.CustomerPhone, order.OrderID, plan.Units, plan.PaymentAmount); err != nil {
				h.L.Errorf("failed sending booking confirmation for order %s: %v", order.OrderID, err)
			}
		}

		return FiberJsonResponse(c, fiber.StatusOK, "success", "purchase confirmed", order)
	}
}
