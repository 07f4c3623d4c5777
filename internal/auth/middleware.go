package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/observability"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// AuthMiddleware validates bearer tokens on every non-public route and attaches
// the caller's identity to the request.
type AuthMiddleware struct {
	tokens  *TokenManager
	routes  *RouteTable
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, routes *RouteTable, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	if routes == nil {
		routes = DefaultRouteTable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, routes: routes, logger: logger, metrics: metrics}
}

// Handle enforces authentication for non-public routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if m.routes.Classify(c.Method(), c.Path()) == AccessPublic {
		return c.Next()
	}

	claims, err := m.tokens.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return reject(c, m.logger, m.metrics, err)
	}

	identity := claims.Identity()
	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
	return c.Next()
}

// reject writes the rejection envelope and stops the chain.
func reject(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) error {
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordRejection(domainErr.Code)
	logger.Debug("request rejected",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("code", domainErr.Code),
		zap.Error(err),
	)
	return c.Status(domainErr.HTTPStatus).JSON(domainErr.Body())
}
