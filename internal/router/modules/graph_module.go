package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hobbylink/internal/container"
	handlers "github.com/oksasatya/hobbylink/internal/interface/http"
	"github.com/oksasatya/hobbylink/internal/interface/middleware"
)

// GraphModule exposes the node/edge projection consumed by the canvas:
//   GET /api/graph
type GraphModule struct {
	Handler *handlers.UserHandler
}

func NewGraphModule(h *handlers.UserHandler) *GraphModule {
	return &GraphModule{Handler: h}
}

func (m *GraphModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/graph", rl, m.Handler.Graph)
}
