package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-access-service/internal/application"
	"user-access-service/internal/domain/entity"
	"user-access-service/internal/principal"
	"user-access-service/pkg/response"
	"user-access-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type editUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// List GET /api/users?username=&skip=&take=
func (h *UserHandler) List(c *gin.Context) {
	input := application.ListInput{Username: c.Query("username")}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			input.Skip = &n
		}
	}
	if v := c.Query("take"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			input.Take = &n
		}
	}

	res, err := h.Svc.GetUsers(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err, "list users failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	res, err := h.Svc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "get user failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// Edit PUT /api/users/:id
func (h *UserHandler) Edit(c *gin.Context) {
	var req editUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail[any](response.KindBadRequest, validation.Summary(err)))
		return
	}

	input := application.EditInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
		Role:      entity.ParseRole(req.Role),
	}
	modifiedBy := principal.NameFrom(c.Request.Context())

	res, err := h.Svc.EditUser(c.Request.Context(), c.Param("id"), input, modifiedBy)
	if err != nil {
		h.fail(c, err, "edit user failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "delete user failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// ChangePassword PUT /api/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail[any](response.KindBadRequest, validation.Summary(err)))
		return
	}

	modifiedBy := principal.NameFrom(c.Request.Context())
	res, err := h.Svc.ChangePassword(c.Request.Context(), c.Param("id"), req.NewPassword, modifiedBy)
	if err != nil {
		h.fail(c, err, "change password failed")
		return
	}
	c.JSON(res.HTTPStatus(), res)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size := 0
	if v := c.Query("size"); v != "" {
		size, _ = strconv.Atoi(v)
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err, "search users failed")
		return
	}
	c.JSON(http.StatusOK, response.OK(hits, ""))
}

func (h *UserHandler) fail(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
	c.JSON(http.StatusInternalServerError,
		response.Fail[any](response.KindBadRequest, "An unexpected error occurred."))
}
