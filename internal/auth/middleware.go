package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/mechanic-shop/pkg/util"
)

const customerIDKey = "auth_customer_id"

// AuthMiddleware validates bearer tokens for customer endpoints.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. The verified token
// identity is trusted as-is; no session store is consulted.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header, use: Bearer <token>")
	}

	customerID, err := m.tokens.VerifyToken(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("token has expired, please log in again")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(customerIDKey, customerID)
	return c.Next()
}

// CustomerIDFromContext retrieves the authenticated customer id.
func CustomerIDFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(customerIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
