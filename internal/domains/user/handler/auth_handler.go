package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/user"
	"book-catalog/internal/shared/response"
)

const (
	loginTemplate = "login.html"
	booksPath     = "/books"
)

// CookieConfig - thuộc tính của session cookie
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler xử lý login/logout cho cả JSON API và HTML form
type AuthHandler struct {
	service user.Service
	cookie  CookieConfig
}

func NewAuthHandler(service user.Service, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// ========================================
// LOGIN
// ========================================

// LoginPage - GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, loginTemplate, gin.H{})
}

// Login - POST /login
// Content-Type application/json -> JSON API, còn lại -> HTML form
func (h *AuthHandler) Login(c *gin.Context) {
	if c.ContentType() == binding.MIMEJSON {
		h.loginJSON(c)
		return
	}
	h.loginForm(c)
}

func (h *AuthHandler) loginJSON(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	// body hỏng được xử lý như credentials rỗng
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = user.LoginRequest{}
	}

	// STEP 2: CALL SERVICE LAYER
	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		status, msg := apiLoginError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Login failed")
		}
		response.Error(c, status, msg)
		return
	}

	// STEP 3: SET COOKIE + RESPONSE
	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	response.Message(c, http.StatusOK, user.MsgLoginSuccessful)
}

func (h *AuthHandler) loginForm(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		req = user.LoginRequest{}
	}
	req.Password = strings.TrimSpace(req.Password)

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		msg, ok := formLoginError(err)
		if !ok {
			log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Login failed")
			response.InternalServerError(c, response.MsgInternalServerError)
			return
		}
		c.HTML(http.StatusOK, loginTemplate, gin.H{
			"Error":    msg,
			"Username": req.Username,
		})
		return
	}

	h.setSessionCookie(c, session.Token, session.ExpiresAt)
	c.Redirect(http.StatusFound, booksPath)
}

// apiLoginError map service error -> (status, message) của JSON API
func apiLoginError(err error) (int, string) {
	switch {
	case errors.Is(err, user.ErrMissingCredentials),
		errors.Is(err, user.ErrMissingUsername),
		errors.Is(err, user.ErrMissingPassword):
		return http.StatusBadRequest, user.MsgCredentialsRequired
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusUnauthorized, user.MsgInvalidUsername
	case errors.Is(err, user.ErrInvalidPassword):
		return http.StatusUnauthorized, user.MsgInvalidPassword
	default:
		return http.StatusInternalServerError, response.MsgInternalServerError
	}
}

// message hiển thị trong .error-message của login form
var formLoginMessages = map[error]string{
	user.ErrMissingCredentials: user.MsgCredentialsRequired,
	user.ErrMissingUsername:    user.MsgUsernameRequired,
	user.ErrMissingPassword:    user.MsgPasswordRequired,
	user.ErrUserNotFound:       user.MsgUsernameNotFound,
	user.ErrInvalidPassword:    user.MsgIncorrectPassword,
}

func formLoginError(err error) (string, bool) {
	for sentinel, msg := range formLoginMessages {
		if errors.Is(err, sentinel) {
			return msg, true
		}
	}
	return "", false
}

// ========================================
// LOGOUT
// ========================================

// Logout - GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, user.ErrNotLoggedIn) {
			response.Forbidden(c, user.MsgNotLoggedIn)
			return
		}
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Logout failed")
		response.InternalServerError(c, response.MsgInternalServerError)
		return
	}

	h.clearSessionCookie(c)
	response.Message(c, http.StatusOK, user.MsgLogoutSuccessful)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.cookie.MaxAge.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
