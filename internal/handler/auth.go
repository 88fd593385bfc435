package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/config"
	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/repository"
	"github.com/iliyamo/hotel-table-reservation/internal/service"
	"github.com/iliyamo/hotel-table-reservation/internal/utils"
)

// AuthHandler serves both login paths: OTP for customers (mobile
// number only, auto-registered on first verify) and email/password for
// staff. Both end in the same JWT access + refresh token pair.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	OTP    *service.OTPStore
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo, otp *service.OTPStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, OTP: otp}
}

type otpRequestReq struct {
	Mobile string `json:"mobile"`
}

// RequestOTP issues a one-time login code for a mobile number. In the
// dev environment the code is echoed in the response; in production it
// goes out through the SMS gateway only.
//
// POST /v1/auth/otp/request
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req otpRequestReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Mobile) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mobile required"})
	}
	code, err := h.OTP.Issue(c.Request().Context(), strings.TrimSpace(req.Mobile))
	if err != nil {
		if errors.Is(err, service.ErrOTPUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "otp login unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue code"})
	}
	resp := echo.Map{"message": "code sent"}
	if h.Cfg.Env == "dev" {
		resp["code"] = code
	}
	return c.JSON(http.StatusOK, resp)
}

type otpVerifyReq struct {
	Mobile string `json:"mobile"`
	Code   string `json:"code"`
}

// VerifyOTP checks the submitted code, creating the customer account
// on first login, and returns a token pair. Codes are single-use.
//
// POST /v1/auth/otp/verify
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req otpVerifyReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Mobile) == "" || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mobile and code required"})
	}
	ctx := c.Request().Context()
	mobile := strings.TrimSpace(req.Mobile)
	if err := h.OTP.Verify(ctx, mobile, strings.TrimSpace(req.Code)); err != nil {
		if errors.Is(err, service.ErrOTPMismatch) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired code"})
		}
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "otp login unavailable"})
	}
	user, err := h.Users.EnsureByMobile(ctx, mobile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return h.issueTokens(c, user)
}

type staffRegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// RegisterStaff creates a staff account with a bcrypt-hashed password.
//
// POST /v1/auth/register
func (h *AuthHandler) RegisterStaff(c echo.Context) error {
	var req staffRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Mobile) == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, mobile and a password of at least 8 characters are required"})
	}
	id, err := h.Users.CreateStaff(c.Request().Context(), req.Name, req.Email, req.Mobile, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		case errors.Is(err, repository.ErrMobileExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "mobile already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user_id": id})
}

type staffLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginStaff authenticates a staff account by email and password.
//
// POST /v1/auth/login
func (h *AuthHandler) LoginStaff(c echo.Context) error {
	var req staffLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	user, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil || user.Role != model.RoleStaff || !user.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issueTokens(c, user)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token: the presented token is revoked and
// a fresh pair is issued. A revoked or expired token yields 401.
//
// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx := c.Request().Context()
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return h.issueTokens(c, user)
}

// Logout revokes the presented refresh token. The access token simply
// expires.
//
// POST /v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated user's profile.
//
// GET /v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"mobile": user.Mobile,
		"role":   user.Role,
	})
}

// issueTokens writes a fresh access + refresh pair for the user.
func (h *AuthHandler) issueTokens(c echo.Context, user model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create refresh token"})
	}
	ctx := c.Request().Context()
	if err := h.Tokens.StoreRefresh(ctx, user.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  access.Token,
		"expires_at":    access.Exp,
		"refresh_token": refresh.Raw,
		"role":          user.Role,
	})
}
