package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hobbylink/internal/container"
	handlers "github.com/oksasatya/hobbylink/internal/interface/http"
	"github.com/oksasatya/hobbylink/internal/interface/middleware"
)

// UserModule wires the user CRUD and relationship routes:
//   GET    /api/users            list with refreshed scores
//   POST   /api/users            create
//   PUT    /api/users/:id        partial update
//   DELETE /api/users/:id        delete (guarded by active relationships)
//   POST   /api/users/:id/link   create friendship
//   DELETE /api/users/:id/unlink remove friendship
//   GET    /api/users/search     free-text search (Elasticsearch)
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Mutations get a tighter per-IP budget than reads; private IPs bypass.
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	writeLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/users", readLimiter, m.Handler.List)
	rg.GET("/users/search", readLimiter, m.Handler.Search)
	rg.POST("/users", writeLimiter, m.Handler.Create)
	rg.PUT("/users/:id", writeLimiter, m.Handler.Update)
	rg.DELETE("/users/:id", writeLimiter, m.Handler.Delete)
	rg.POST("/users/:id/link", writeLimiter, m.Handler.Link)
	rg.DELETE("/users/:id/unlink", writeLimiter, m.Handler.Unlink)
}
