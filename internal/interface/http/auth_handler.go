package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-access-service/internal/application"
	"user-access-service/internal/domain/entity"
	"user-access-service/internal/principal"
	"user-access-service/pkg/response"
	"user-access-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	Role      string `json:"role" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail[any](response.KindBadRequest, validation.Summary(err)))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err, "login failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail[any](response.KindBadRequest, validation.Summary(err)))
		return
	}

	input := application.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.ParseRole(req.Role),
		IsActive:  req.IsActive,
	}
	createdBy := principal.NameFrom(c.Request.Context())

	res, err := h.Svc.Register(c.Request.Context(), input, createdBy)
	if err != nil {
		h.fail(c, err, "registration failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// fail hides infrastructure errors behind a generic response.
func (h *AuthHandler) fail(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
	c.JSON(http.StatusInternalServerError,
		response.Fail[any](response.KindBadRequest, "An unexpected error occurred."))
}
