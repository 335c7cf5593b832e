package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ethraa/internal/apperr"
	"ethraa/internal/service"
)

type signupRequest struct {
	Name            trimmed `json:"name" binding:"required,min=3,max=50"`
	Username        trimmed `json:"username" binding:"required,min=3,max=20,username"`
	Email           trimmed `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type authResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	Data        userResponse `json:"data"`
	AccessToken string       `json:"access_token"`
}

func sendAuthResponse(c *gin.Context, status int, message string, result service.AuthResult) {
	c.JSON(status, authResponse{
		Status:      "success",
		Message:     message,
		Data:        toUserResponse(result.User),
		AccessToken: result.Token,
	})
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	result, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Name:     string(req.Name),
		Username: string(req.Username),
		Email:    string(req.Email),
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	sendAuthResponse(c, http.StatusCreated, "messages.user.signup_success", result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// identifier prefers the email when both are sent.
func (r loginRequest) identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	if strings.TrimSpace(req.identifier()) == "" {
		h.fail(c, apperr.New(apperr.KindInvalidInput, apperr.KeyValidation))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.identifier(), req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	sendAuthResponse(c, http.StatusOK, "messages.user.login_success", result)
}

type forgotPasswordRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if strings.TrimSpace(identifier) == "" {
		h.fail(c, apperr.New(apperr.KindInvalidInput, apperr.KeyValidation))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), identifier); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.mail.send_success", nil)
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.fail(c, apperr.New(apperr.KindInvalidOrExpiredToken, apperr.KeyInvalidToken))
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	result, err := h.auth.ResetPassword(c.Request.Context(), token, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	sendAuthResponse(c, http.StatusOK, "messages.user.update_password_success", result)
}

func (h HandlerSet) VerifyAccountToken(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.auth.VerifyAccountToken(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "messages.mail.send_success", nil)
}

func (h HandlerSet) ActivateAccount(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.fail(c, apperr.New(apperr.KindInvalidOrExpiredToken, apperr.KeyInvalidToken))
		return
	}

	result, err := h.auth.ActivateAccount(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}

	sendAuthResponse(c, http.StatusOK, "messages.user.activate_account_success", result)
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

func (h HandlerSet) UpdateMePassword(c *gin.Context) {
	user, ok := h.actor(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, err)
		return
	}

	result, err := h.auth.ChangePassword(c.Request.Context(), user, req.OldPassword, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	sendAuthResponse(c, http.StatusOK, "messages.user.update_password_success", result)
}
