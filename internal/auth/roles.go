package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/observability"
)

// AdminGate admits ADMIN_ONLY routes only for callers holding the admin role.
// It re-reads the token from the header instead of trusting the identity attached
// by AuthMiddleware.
type AdminGate struct {
	tokens  *TokenManager
	routes  *RouteTable
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewAdminGate constructs the gate.
func NewAdminGate(tokens *TokenManager, routes *RouteTable, logger *zap.Logger, metrics *observability.Metrics) *AdminGate {
	if routes == nil {
		routes = DefaultRouteTable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminGate{tokens: tokens, routes: routes, logger: logger, metrics: metrics, now: time.Now}
}

// Handle rejects non-admin callers on admin routes and passes everything else through.
func (g *AdminGate) Handle(c *fiber.Ctx) error {
	if g.routes.Classify(c.Method(), c.Path()) != AccessAdminOnly {
		return c.Next()
	}

	claims, err := g.tokens.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return reject(c, g.logger, g.metrics, err)
	}
	if claims.UserRole != domain.UserRoleAdmin {
		return reject(c, g.logger, g.metrics, ErrInsufficientRole)
	}

	g.logger.Info("admin access",
		zap.String("url", c.Path()),
		zap.Time("start", g.now()),
		zap.String("user_id", claims.Subject),
	)
	return c.Next()
}
