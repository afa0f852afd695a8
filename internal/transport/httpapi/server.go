package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/utils"
)

// NewServer wires the routes. The feed and download endpoints sit behind the
// basic-auth gate when credentials are configured; the health endpoint and
// the bare redirect stay open.
func NewServer(cfg *config.Config, ctrl *Controller) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(requestLogMiddleware())

	r.GET("/", ctrl.Home)
	r.GET("/health", ctrl.Health)

	protected := r.Group("/")
	if cfg.BasicAuth.User != "" && cfg.BasicAuth.Password != "" {
		protected.Use(gin.BasicAuth(gin.Accounts{cfg.BasicAuth.User: cfg.BasicAuth.Password}))
	} else {
		slog.Warn("basic auth disabled, feed endpoints are unauthenticated")
	}

	protected.GET("/opds", ctrl.Index)
	protected.GET("/opds/root.xml", ctrl.Root)
	protected.GET("/opds/opensearch.xml", ctrl.OpenSearch)
	protected.GET("/opds/search", ctrl.SearchFeed)
	protected.GET("/opds/bestsellers", ctrl.Bestsellers)
	protected.GET("/download", ctrl.Download)

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.CreateCtxWithRqID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info(
			"request",
			slog.String("rqID", utils.GetRequestIDFromCtx(c.Request.Context())),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
