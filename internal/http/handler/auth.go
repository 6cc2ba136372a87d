package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdfvault/internal/model"
	"pdfvault/internal/service"
)

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  model.UserView `json:"user"`
}

// RegisterUser handles POST /auth/register.
func RegisterUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON payload")
		}

		userID, err := svc.Register(c.UserContext(), req.FullName, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFields):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "full name, email and password are required")
			case errors.Is(err, service.ErrInvalidEmail):
				return writeError(c, fiber.StatusBadRequest, "INVALID_EMAIL", "invalid email format")
			case errors.Is(err, service.ErrWeakPassword):
				return writeError(c, fiber.StatusBadRequest, "WEAK_PASSWORD", "password does not meet the minimum length")
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "a user with this email already exists")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user_id": userID})
	}
}

// LoginUser handles POST /auth/login.
func LoginUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON payload")
		}

		tok, user, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(loginResponse{Token: tok, User: user})
	}
}
