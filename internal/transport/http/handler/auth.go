package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gotodo/internal/app"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields),
			errors.Is(err, app.ErrInvalidEmail),
			errors.Is(err, app.ErrWeakPassword),
			errors.Is(err, app.ErrRegistrationFailed):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
		"token": result.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields), errors.Is(err, app.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
		"token": result.Token,
	})
}

// Me returns the identity the auth gate resolved for this request.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, email, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    userID,
			"email": email,
		},
	})
}
