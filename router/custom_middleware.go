package router

import (
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dakshininfra/purchase-api/handlers"
	"github.com/dakshininfra/purchase-api/models"
)

// GetUserFromAuthToken resolves the X-Auth-Token header to a user profile,
// redis-cached for a day. Requests without a token pass through; the wizard
// can be browsed before login.
func GetUserFromAuthToken(UserDb *mongo.Collection, rcache *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		token := c.Get("X-Auth-Token")
		if token == "" {
			return c.Next()
		}

		var user models.User

		err := rcache.Get(ctx, token, &user)
		if err != nil && err != cache.ErrCacheMiss {
			return handlers.FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "failed get user from cache", err.Error())
		}

		if err == cache.ErrCacheMiss {
			filter := bson.M{"auth_token": token}
			if err = UserDb.FindOne(ctx, filter).Decode(&user); err != nil {
				l.Errorf("failed to resolve auth token to a user")
				return handlers.FiberJsonResponse(c, fiber.StatusUnauthorized, "error", "unknown auth token", err.Error())
			}

			if err = rcache.Set(&cache.Item{
				Ctx:   ctx,
				Key:   token,
				Value: &user,
				TTL:   24 * time.Hour,
			}); err != nil {
				return handlers.FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "failed set user in cache", err.Error())
			}
		}

		return c.Next()
	}
}
