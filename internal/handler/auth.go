package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/repository"
	"github.com/Harikrishna-Srinivasan-1/Railway-System-Database/internal/utils"
)

// AuthHandler issues access tokens for booking-clerk accounts. The
// first account registers freely (bootstrap); afterwards register
// requires an authenticated clerk, which the router enforces by
// mounting a second register route inside the protected group.
type AuthHandler struct {
	Clerks       *repository.ClerkRepo
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(clerks *repository.ClerkRepo, secret string, ttlMin, bcryptCost int) *AuthHandler {
	if clerks == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Clerks: clerks, JWTSecret: secret, AccessTTLMin: ttlMin, BcryptCost: bcryptCost}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /v1/auth/register. Outside the protected
// group it only succeeds while no clerk exists yet.
func (h *AuthHandler) Register(c echo.Context) error {
	var body credentials
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and a password of at least 8 characters are required"})
	}
	ctx := c.Request().Context()
	if c.Get("clerk_id") == nil {
		n, err := h.Clerks.Count(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if n > 0 {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "registration requires an authenticated clerk"})
		}
	}
	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hashing failed"})
	}
	id, err := h.Clerks.Create(ctx, body.Email, hash, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "email": body.Email})
}

// Login handles POST /v1/auth/login and returns a signed access
// token on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var body credentials
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	clerk, err := h.Clerks.GetByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrClerkNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !clerk.IsActive || !utils.VerifyPassword(clerk.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, clerk.ID, "CLERK", h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token signing failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
