package server

import (
	"crypto/subtle"
	"time"

	"digitalpen/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "digitalpen-api"
	tokenAudience = "digitalpen-admin"
	tokenLifetime = 12 * time.Hour
)

// AdminLogin handles POST /admin/login. Credentials are compared against the
// single configured admin pair (case-sensitive, exact match). On success the
// response carries a signed bearer token; the external shape stays
// credentials in, success flag plus token out.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseStrictBody(c, &req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if !s.checkAdminCredentials(req.Username, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.LoginResponse{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	token, err := s.issueAdminToken()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(models.LoginResponse{
		Success: true,
		Token:   token,
	})
}

// checkAdminCredentials verifies the pair against config. When a bcrypt hash
// is configured it takes precedence over the plaintext password.
func (s *Server) checkAdminCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1

	if s.config.AdminPasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword(
			[]byte(s.config.AdminPasswordHash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
	return userOK && passOK
}

func (s *Server) issueAdminToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"sub": s.config.AdminUsername,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
