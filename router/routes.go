package router

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	client "github.com/dakshininfra/purchase-api/app/clients"
	"github.com/dakshininfra/purchase-api/database"
	"github.com/dakshininfra/purchase-api/handlers"
	"github.com/dakshininfra/purchase-api/purchase"
)

// Create a new instance of the logger.
var l = logrus.New()

func SetupRoutes(app *fiber.App) {

	userHandler := handlers.NewHandler(os.Getenv("USER_COLLECTION"), l)
	orderHandler := handlers.NewHandler(os.Getenv("ORDER_COLLECTION"), l)

	gateway := client.NewGatewayClient(l)
	verifier := client.NewVerificationClient(l)
	notifier := client.NewTwilioClient(l)
	store := purchase.NewStore(purchase.DefaultSessionTTL)
	schemeUrl := os.Getenv("SCHEME_API_URL")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Dakshin Infra Purchase API",
		})
	})

	app.Get("/health", handlers.HandleHealthCheck)

	api := app.Group("/api")
	coreEndpoints := api.Group("/core")

	coreEndpoints.Get("/projects/:project_id/schemes", handlers.GetProjectSchemes(orderHandler, schemeUrl))
	coreEndpoints.Get("/schemes/:id", handlers.GetScheme(orderHandler, schemeUrl))

	users := coreEndpoints.Group("/users")
	users.Post("/", handlers.CreateUser(userHandler))
	users.Get("/:email", handlers.GetUser(userHandler))
	users.Put("/:email", handlers.UpdateUser(userHandler))

	sessions := api.Group("/purchase/sessions")
	sessions.Use(GetUserFromAuthToken(userHandler.UserDb, database.GetCache()))
	sessions.Post("/", handlers.StartPurchase(store))
	sessions.Get("/:id", handlers.GetPurchaseSession(store))
	sessions.Delete("/:id", handlers.AbandonPurchase(store))
	sessions.Put("/:id/plan", handlers.SelectPlan(orderHandler, store, schemeUrl))
	sessions.Post("/:id/next", handlers.WizardNext(store))
	sessions.Post("/:id/prev", handlers.WizardPrev(store))
	sessions.Post("/:id/accounts", handlers.AddJointAccount(store))
	sessions.Put("/:id/accounts/:acc_id", handlers.UpdateAccount(store))
	sessions.Delete("/:id/accounts/:acc_id", handlers.RemoveAccount(store))
	sessions.Post("/:id/kyc/:acc_id", handlers.VerifyAccountDocuments(store, verifier))
	sessions.Post("/:id/payment", handlers.InitiatePayment(store, gateway))
	sessions.Post("/:id/payment/confirm", handlers.ConfirmPayment(orderHandler, store, notifier))
}
