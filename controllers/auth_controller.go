package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"minutemate/models"
	"minutemate/utils"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         models.UserView `json:"user"`
}

type AuthController struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, mailer *utils.Mailer, logger *log.Logger) *AuthController {
	return &AuthController{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

// isDuplicateErr reports whether err is a unique-constraint violation.
// Dialects that don't translate to gorm.ErrDuplicatedKey surface it in the
// driver message instead.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// Register creates the account and its profile row. No session is issued
// here; the caller signs in afterwards.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	user := models.Profile{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         string(models.RoleUser),
		PasswordHash: string(hashedPassword),
	}

	// The unique index on email is the authority on duplicates; a
	// check-then-insert would race with concurrent registrations
	if err := ac.DB.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}

	// Send welcome email, but don't fail registration if it can't be delivered
	var settings models.AppSettings
	companyName := ""
	if err := ac.DB.First(&settings).Error; err == nil {
		companyName = settings.CompanyName
	}
	if err := ac.Mailer.SendWelcomeEmail(user.Email, user.FirstName, companyName); err != nil {
		ac.Logger.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(models.ToUserView(&user)))
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var user models.Profile
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
	}

	accessToken, refreshToken, err := utils.GenerateJWTToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens", err)
	}

	return c.JSON(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         models.ToUserView(&user),
	})
}

// Logout bumps the token version so every outstanding token becomes invalid.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	if err := ac.DB.Model(user).Update("token_version", user.TokenVersion+1).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to sign out", err)
	}

	return c.JSON(fiber.Map{"message": "Signed out successfully"})
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	// Parsing already rejects expired tokens
	claims, err := utils.ParseJWTToken(req.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token", nil)
	}

	var user models.Profile
	if err := ac.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", nil)
	}

	if claims.TokenVersion != user.TokenVersion {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token version", nil)
	}

	accessToken, refreshToken, err := utils.GenerateJWTToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens", err)
	}

	return c.JSON(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         models.ToUserView(&user),
	})
}

// GetCurrentUser is the session re-fetch: it reloads the profile row and maps
// it, so role normalization applies on every read.
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.Profile)

	var fresh models.Profile
	if err := ac.DB.First(&fresh, "id = ?", user.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", nil)
	}

	return c.JSON(utils.SuccessResponse(models.ToUserView(&fresh)))
}
