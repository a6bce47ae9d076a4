package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/middleware"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// verifiedPage is served after a successful verification link click
const verifiedPage = `<html>
	<head>
		<title>Email Verified</title>
		<style>
			body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
			.success { color: #28a745; font-size: 24px; margin-bottom: 20px; }
			.message { color: #333; font-size: 16px; }
		</style>
	</head>
	<body>
		<div class="success">Email Verified Successfully!</div>
		<div class="message">You can now log in to your account.</div>
	</body>
</html>`

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Signup registers a new user and sends a verification email
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Signup(ctx.Request.Context(), &req); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, dto.NewError("User already exists"))
			return
		}
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			ctx.JSON(http.StatusBadRequest, dto.NewError(custom.Message))
			return
		}
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Signup failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewError("Error during signup"))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessage("Signup successful! Check your email for verification."))
}

// VerifyEmail handles the verification link and renders a success page
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	token := ctx.Param("token")

	if err := c.authService.VerifyEmail(ctx.Request.Context(), token); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.NewError("Invalid verification link"))
			return
		}
		c.logger.Error().Err(err).Msg("Email verification failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewError("Invalid or expired verification token"))
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(verifiedPage))
}

// ManualVerify marks a user verified without a token
func (c *AuthController) ManualVerify(ctx *gin.Context) {
	var req dto.ManualVerifyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.ManualVerify(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewError("User not found"))
			return
		}
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Manual verification failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewError("Error verifying user"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User verified successfully", "user": user})
}

// Login authenticates a user. Unverified accounts and wrong passwords
// answer 202 so the frontend can show a soft prompt instead of an
// auth failure.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			ctx.JSON(http.StatusBadRequest, dto.NewError("Email does not exist"))
		case errors.Is(err, apperrors.ErrEmailNotVerified):
			ctx.JSON(http.StatusAccepted, dto.NewError("Please Verify Your Email First"))
		case errors.Is(err, apperrors.ErrIncorrectPassword):
			ctx.JSON(http.StatusAccepted, dto.NewError("Incorrect password"))
		default:
			c.logger.Error().Err(err).Str("email", req.Email).Msg("Login failed")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error during login", err))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Login successful", user))
}

// UpdateUserDetails applies a partial profile update keyed by email
func (c *AuthController) UpdateUserDetails(ctx *gin.Context) {
	var req dto.UpdateUserDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Email is required to update user details"))
		return
	}

	user, err := c.authService.UpdateUserDetails(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewError("User not found with the given email"))
			return
		}
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to update user details")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error updating user details", err))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("User details updated successfully", user))
}
