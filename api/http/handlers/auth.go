package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/auth"
)

type AuthHandler struct {
	useCase  auth.AuthUseCase
	validate *validator.Validate
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase, validate: newValidator()}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *AuthHandler) parse(c *fiber.Ctx) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, presenter.ErrBadRequest("invalid JSON payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return req, presenter.ErrBadRequest(validationMessage(err))
	}
	return req, nil
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ApiError
// @Failure 409 {object} presenter.ApiError
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}

	result, err := h.useCase.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.ErrConflict("user already exists")
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrPasswordTooLong):
			return presenter.ErrBadRequest(err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.ErrBadRequest("invalid email or password")
		default:
			return err
		}
	}

	return presenter.JSON(c, http.StatusCreated, authResponse{
		ID:    result.User.ID.String(),
		Email: result.User.Email,
		Token: result.Token,
	})
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ApiError
// @Failure 401 {object} presenter.ApiError
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if err != nil {
		return err
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.ErrUnauthorized("invalid credentials")
		}
		return err
	}

	return presenter.JSON(c, http.StatusOK, authResponse{
		ID:    result.User.ID.String(),
		Email: result.User.Email,
		Token: result.Token,
	})
}
