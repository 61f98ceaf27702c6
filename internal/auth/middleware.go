package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brainswarm/booking-api/internal/domain"
	apperrors "github.com/brainswarm/booking-api/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller as carried by its token.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// AuthMiddleware validates bearer tokens and stores the caller identity.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// ResolveIdentity turns a raw token into the caller identity.
func (m *AuthMiddleware) ResolveIdentity(token string) (*Identity, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid authentication credentials")
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("Invalid authorization header")
	}

	identity, err := m.ResolveIdentity(strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
