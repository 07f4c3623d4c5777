package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/audit"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditTrail reads back recorded audit entries.
type AuditTrail interface {
	Recent(ctx context.Context, limit int64) ([]audit.Entry, error)
}

// AdminHandler exposes the privileged endpoints. Every mutating operation is audited.
type AdminHandler struct {
	changeRole    audit.Operation[service.ChangeUserRoleInput, service.UserRoleChanged]
	deleteComment audit.Operation[service.DeleteCommentInput, service.CommentDeleted]
	trail         AuditTrail
}

// NewAdminHandler wraps the admin operations with the recorder. trail may be nil.
func NewAdminHandler(admin *service.AdminService, recorder *audit.Recorder, trail AuditTrail) *AdminHandler {
	return &AdminHandler{
		changeRole:    audit.Wrap(recorder, "ChangeUserRole", admin.ChangeUserRole),
		deleteComment: audit.Wrap(recorder, "DeleteComment", admin.DeleteComment),
		trail:         trail,
	}
}

// ChangeUserRole handles PATCH /admin/users/:userId.
func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	changed, err := h.changeRole(auditContext(c), service.ChangeUserRoleInput{
		UserID: c.Params("userId"),
		Role:   req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(changed)
}

// DeleteComment handles DELETE /admin/comments/:commentId.
func (h *AdminHandler) DeleteComment(c *fiber.Ctx) error {
	deleted, err := h.deleteComment(auditContext(c), service.DeleteCommentInput{CommentID: c.Params("commentId")})
	if err != nil {
		return err
	}
	return c.JSON(deleted)
}

// AuditTrail handles GET /admin/audit?limit=N.
func (h *AdminHandler) AuditTrail(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultAuditLimit)
	if limit <= 0 || limit > maxAuditLimit {
		return apperrors.NewValidationError("limit out of range", map[string]any{"max": maxAuditLimit})
	}
	if h.trail == nil {
		return c.JSON(fiber.Map{"data": []audit.Entry{}})
	}

	entries, err := h.trail.Recent(c.UserContext(), int64(limit))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": entries})
}

func auditContext(c *fiber.Ctx) context.Context {
	return audit.WithPath(c.UserContext(), c.Path())
}
