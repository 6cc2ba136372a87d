package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pdfvault/internal/http/middleware"
	"pdfvault/internal/service"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// AddComment handles POST /documents/:id/comments. Allowed for the
// owner and shared users; public-link holders cannot reach this route.
func AddComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req commentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON payload")
		}

		comment, err := svc.Add(c.UserContext(), middleware.UserID(c), id, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCommentRequired):
				return writeError(c, fiber.StatusBadRequest, "COMMENT_REQUIRED", "comment is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or access denied")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
	}
}
