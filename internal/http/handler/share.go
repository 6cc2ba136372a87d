package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdfvault/internal/http/middleware"
	"pdfvault/internal/service"
)

type grantRequest struct {
	Email string `json:"email"`
}

// ListSharedUsers handles GET /documents/:id/users. Owner only.
func ListSharedUsers(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		users, err := svc.ListUsers(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or access denied")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"users": users})
	}
}

// GrantAccess handles POST /documents/:id/users, adding the user
// registered under the posted email to the shared-access set.
func GrantAccess(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req grantRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON payload")
		}

		user, err := svc.Grant(c.UserContext(), middleware.UserID(c), id, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidEmail):
				return writeError(c, fiber.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or access denied")
			case errors.Is(err, service.ErrUserNotFound):
				return writeError(c, fiber.StatusNotFound, "USER_NOT_FOUND", "user with this email not found")
			case errors.Is(err, service.ErrSelfGrant):
				return writeError(c, fiber.StatusBadRequest, "SELF_GRANT", "you already have access to this document")
			case errors.Is(err, service.ErrAlreadyShared):
				return writeError(c, fiber.StatusConflict, "ALREADY_SHARED", "user already has access to this document")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{"user": user})
	}
}

// RevokeAccess handles DELETE /documents/:id/users/:userId. Revoking a
// user who was never granted succeeds with no effect.
func RevokeAccess(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		userID := c.Params("userId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(userID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Revoke(c.UserContext(), middleware.UserID(c), id, userID); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or access denied")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ResolveSharedLink handles GET /shared/:linkToken. No authentication:
// the link token itself is the authorization.
func ResolveSharedLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.ResolveLink(c.UserContext(), c.Params("linkToken"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or link is invalid")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"pdf": doc})
	}
}

// DownloadSharedLink handles GET /shared/:linkToken/download with a
// redirect to the presigned URL.
func DownloadSharedLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.ResolveLink(c.UserContext(), c.Params("linkToken"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or link is invalid")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Redirect(doc.URL, fiber.StatusFound)
	}
}
