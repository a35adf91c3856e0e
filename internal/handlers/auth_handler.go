package handlers

import (
	"net/http"
	"time"

	"brokerkit/internal/api/validator"
	"brokerkit/internal/events"
	"brokerkit/internal/models"
	"brokerkit/internal/utils"
	"brokerkit/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, log: logger.New("AuthHandler")}
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"new_password" validate:"required,min=8"`
}

// Register handles the registration of a new member by validating input, hashing the password and storing the account.
// @Summary Register a new member
// @Description Register a new member with email, password and profile details
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string "Member registered successfully"
// @Failure 400 {object} map[string]string "Validation error or email exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req validator.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var existing models.Member
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Member already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	region := req.Region
	if region == "" {
		region = models.RegionDefault
	}

	member := models.Member{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.MemberRoleMember,
		Region:    region,
		Brokerage: req.Brokerage,
	}

	if err := h.db.Create(&member).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	events.Emit("members.created", &member)

	return c.JSON(http.StatusCreated, map[string]string{"message": "Member registered successfully"})
}

// Login handles member login by validating credentials, generating a JWT token, and returning it.
// @Summary Login member
// @Description Authenticate member and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validator.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var member models.Member
	if err := h.db.Where("email = ? AND is_deleted = false", req.Email).First(&member).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateJWT(member)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(member)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	session := &models.AuthSession{
		MemberID:  member.ID,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := h.db.Create(session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// RefreshToken refreshes a member's access token using their refresh token
// @Summary Refresh access token
// @Description Get a new access token using a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string "New access token"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req validator.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	claims, err := utils.ParseRefreshToken(req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var session models.AuthSession
	if err := h.db.Where("refresh = ? AND member_id = ?", req.Refresh, claims.MemberID).First(&session).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var member models.Member
	if err := h.db.Where("id = ? AND is_deleted = false", session.MemberID).First(&member).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Member not found"})
	}

	accessToken, err := utils.GenerateJWT(member)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate access token"})
	}

	session.Token = accessToken
	session.ExpiresAt = time.Now().Add(24 * time.Hour)
	if err := h.db.Save(&session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save access token"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": accessToken, "exp": "24h"})
}

// Logout revokes the session behind the presented token.
// @Summary Logout member
// @Description Revoke the current session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	memberID, _ := c.Get("memberID").(string)
	if memberID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	authHeader := c.Request().Header.Get("Authorization")
	token := ""
	if len(authHeader) > 7 {
		token = authHeader[7:]
	}

	if err := h.db.Where("member_id = ? AND token = ?", memberID, token).Delete(&models.AuthSession{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to revoke session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// RequestPasswordReset generates a reset code and stores it. Delivery
// goes through the mail worker via the password.reset event.
// @Summary Request password reset
// @Description Request a password reset code to be sent via email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email for password reset"
// @Success 200 {object} map[string]string "Reset code sent if email exists"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var member models.Member
	if err := h.db.Where("email = ?", req.Email).First(&member).Error; err != nil {
		return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset code will be sent"})
	}

	code, err := utils.GenerateRandomString(10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate reset code"})
	}

	reset := models.PasswordReset{
		MemberID:  member.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	if err := h.db.Create(&reset).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset code"})
	}

	reset.Member = &member
	events.Emit("password.reset", &reset)

	return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset code will be sent"})
}

// VerifyResetCode verifies a reset code and updates the password.
// @Summary Verify reset code and set new password
// @Description Verify password reset code and update password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "Reset code verification and new password"
// @Success 200 {object} map[string]string "Password reset successful"
// @Failure 400 {object} map[string]string "Invalid or expired reset code"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/password-reset/verify [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req VerifyResetCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var reset models.PasswordReset
	if err := h.db.Where("code = ? AND used = ? AND expires_at > ?",
		req.Code, false, time.Now()).First(&reset).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset code"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	var member models.Member
	if err := h.db.Where("id = ?", reset.MemberID).First(&member).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get member"})
	}

	h.db.Model(&member).Update("password", string(hashedPassword))
	h.db.Model(&reset).Update("used", true)

	// Force re-login everywhere
	h.db.Where("member_id = ?", member.ID).Delete(&models.AuthSession{})

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// GetMe returns the current member
// @Summary Get current member
// @Description Get details of the current authenticated member
// @Tags members
// @Accept json
// @Produce json
// @Success 200 {object} models.Member
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	memberID, _ := c.Get("memberID").(string)

	var member models.Member
	if err := h.db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Member not found"})
	}
	return c.JSON(http.StatusOK, member)
}

// UpdateMe lets a member edit their own profile fields.
// @Summary Update current member profile
// @Description Update profile fields of the authenticated member
// @Tags members
// @Accept json
// @Produce json
// @Success 200 {object} models.Member
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	memberID, _ := c.Get("memberID").(string)

	var member models.Member
	if err := h.db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Member not found"})
	}

	var updateData struct {
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Region     string `json:"region"`
		Brokerage  string `json:"brokerage"`
		Phone      string `json:"phone"`
		MarketArea string `json:"marketArea"`
		PhotoURL   string `json:"photoUrl"`
	}

	if err := c.Bind(&updateData); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid input"})
	}

	if updateData.Region != "" && !models.IsValidRegion(updateData.Region) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid region"})
	}

	if updateData.FirstName != "" {
		member.FirstName = updateData.FirstName
	}
	if updateData.LastName != "" {
		member.LastName = updateData.LastName
	}
	if updateData.Region != "" {
		member.Region = updateData.Region
	}
	if updateData.Brokerage != "" {
		member.Brokerage = updateData.Brokerage
	}
	if updateData.Phone != "" {
		member.Phone = updateData.Phone
	}
	if updateData.MarketArea != "" {
		member.MarketArea = updateData.MarketArea
	}
	if updateData.PhotoURL != "" {
		member.PhotoURL = updateData.PhotoURL
	}

	if err := h.db.Save(&member).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update member"})
	}

	return c.JSON(http.StatusOK, member)
}

// ListMembers returns a list of all members (admin only)
// @Summary List all members
// @Description Get a list of all members (requires admin role)
// @Tags members
// @Accept json
// @Produce json
// @Success 200 {array} models.Member
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/members [get]
func (h *AuthHandler) ListMembers(c echo.Context) error {
	var members []models.Member
	if err := h.db.Where("is_deleted = false").Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch members"})
	}
	return c.JSON(http.StatusOK, members)
}
