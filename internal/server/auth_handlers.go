package server

import (
	"crypto/rand"
	"math/big"
	"strings"

	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
	"foodbridge/internal/observability"
	"foodbridge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Passwords are issued by the server rather than chosen by the donor,
// so they can stay short while remaining unguessable.
const (
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordLength   = 8
)

type registerDonorRequest struct {
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func generatePassword() (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, passwordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// RegisterDonor creates a donor account and returns the one-time
// generated password. The password is shown only in this response; only
// its bcrypt hash is stored.
func (s *Server) RegisterDonor(c *fiber.Ctx) error {
	var req registerDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Username(req.Username); err != nil {
		return respondError(c, err)
	}

	existing, err := s.donorRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	if existing != nil {
		return respondError(c, models.NewConflictError("Username is already taken"))
	}

	password, err := generatePassword()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	donor := &models.Donor{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.donorRepo.Create(c.Context(), donor); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.Info("donor registered", "donor_id", donor.ID, "username", donor.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       donor.ID,
		"username": donor.Username,
		"password": password,
	})
}

// Login verifies credentials and issues a session token. The token is
// held only in process memory, so a restart signs every donor out.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Username and password are required"))
	}

	donor, err := s.donorRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	// Same response for unknown user and wrong password.
	if donor == nil {
		observability.AuthFailures.WithLabelValues("unknown_user").Inc()
		return respondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(donor.PasswordHash), []byte(req.Password)); err != nil {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return respondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	token := s.sessions.Issue(donor.ID)
	observability.SessionsIssued.Inc()

	return c.JSON(fiber.Map{
		"token": token,
		"id":    donor.ID,
	})
}
