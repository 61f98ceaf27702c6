package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/brainswarm/booking-api/pkg/util/errorutil"
)

// RequireAdmin returns the identity unchanged when it holds the admin role.
func RequireAdmin(identity *Identity) (*Identity, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	if !identity.IsAdmin() {
		return nil, apperrors.NewForbidden("Admin access required")
	}
	return identity, nil
}

// RequireAdminRole gates a route group to administrators. It must run after
// AuthMiddleware.Handle.
func RequireAdminRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if _, err := RequireAdmin(identity); err != nil {
			return err
		}
		return c.Next()
	}
}

