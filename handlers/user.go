package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dakshininfra/purchase-api/models"
)

type DBInsertResponse struct {
	InsertedId primitive.ObjectID `json:"inserted_id" bson:"_id"`
}

// @Summary Create a user.
// @Description create a single user profile.
// @Tags users
// @Accept json
// @Param user body models.User true "User to create"
// @Produce json
// @Success 200 {object} DBInsertResponse
// @Router /api/core/users [post]
func CreateUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		nUser := new(models.User)
		if err := c.BodyParser(nUser); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", err)
		}

		user, err := h.GetUserByEmail(nUser.Email)
		if user == nil || err != nil {
			// ErrNoDocuments means that the filter did not match any documents in the collection
			if user == nil || err == mongo.ErrNoDocuments {
				nUser.ID = primitive.NewObjectID()
				nUser.CreatedAt = time.Now()
				nUser.UpdatedAt = time.Now()
				res, err := h.Db.InsertOne(h.C, nUser)
				if err != nil {
					return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "failed to create user", err)
				}
				return FiberJsonResponse(c, fiber.StatusOK, "success", "new user created", res.InsertedID)
			}
			h.L.Error("[UserDB] Error checking if user already exists", "error", err)
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "error checking if user already exists", err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "user already exists", DBInsertResponse{user.ID})
	}
}

// @Summary Get a single user.
// @Description fetch a single user profile by email.
// @Tags users
// @Param email path string true "User email"
// @Produce json
// @Success 200 {object} models.User
// @Router /api/core/users/:email [get]
func GetUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")
		user, err := h.GetUserByEmail(email)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "user not found", err)
		}

		return FiberJsonResponse(c, fiber.StatusOK, "success", "found user", user)
	}
}

// @Summary Update a user profile.
// @Description replace the stored profile for a user by email.
// @Tags users
// @Accept json
// @Param email path string true "User email"
// @Param profile body models.UserInfo true "Profile fields"
// @Produce json
// @Success 200 {object} models.User
// @Router /api/core/users/:email [put]
func UpdateUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")

		var profile models.UserInfo
		if err := c.BodyParser(&profile); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", err)
		}

		filter := bson.M{"email": email}
		update := bson.M{"$set": bson.M{"profile": profile, "updated_at": time.Now()}}
		res, err := h.Db.UpdateOne(h.C, filter, update)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "failed to update user", err)
		}
		if res.MatchedCount == 0 {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "user not found", nil)
		}

		user, err := h.GetUserByEmail(email)
		if err != nil {
			return FiberJsonResponse(c, fiber.StatusNotFound, "error", "user not found", err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "user updated", user)
	}
}
