package modules

import (
	"github.com/gin-gonic/gin"

	handlers "user-access-service/internal/interface/http"
	"user-access-service/internal/interface/middleware"
	"user-access-service/pkg/helpers"
)

// UserModule wires the administrator-only account management routes behind
// the bearer-token guard.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RequireAdmin(m.JWT))
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Edit)
		users.DELETE("/:id", m.Handler.Delete)
		users.PUT("/:id/password", m.Handler.ChangePassword)
	}
}
