package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/gin-gonic/gin"
)

// UserAPI is the part of services.UserService the handlers need.
type UserAPI interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, id auth.Identity) (*models.UserView, error)
}

const (
	msgRegistered      = "User registered"
	msgLoggedIn        = "Logged in"
	msgRegisterMissing = "Name, email and password are required"
	msgEmailInUse      = "Email already in use"
	msgLoginMissing    = "Please provide email and password"
	msgBadCredentials  = "Invalid credentials"
	msgUserNotFound    = "User not found"
	msgTokenMissing    = "Not authorized, token missing"
	msgTokenInvalid    = "Not authorized, token invalid or expired"
	msgServerError     = "Server error"
)

type Handler struct {
	users  UserAPI
	logger logging.Logger
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgRegisterMissing)
		return
	}

	res, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err, errorMessages{
			common.ErrorValidation:    msgRegisterMissing,
			common.ErrorAlreadyExists: msgEmailInUse,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgRegistered, "data": res})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgLoginMissing)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, errorMessages{
			common.ErrorValidation:   msgLoginMissing,
			common.ErrorUnauthorized: msgBadCredentials,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgLoggedIn, "data": res})
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		respondMessage(c, http.StatusUnauthorized, msgTokenMissing)
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, errorMessages{
			common.ErrorNotFound: msgUserNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
