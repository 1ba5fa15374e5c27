package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"nurse-directory/config"
	"nurse-directory/internal/mw"
	"nurse-directory/internal/store"
)

// NewRouter creates and configures the gin router for the nurse/ endpoints.
func NewRouter(s store.Store, cfg config.ServerConfig, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	// Names and usernames may contain escaped slashes.
	r.UseRawPath = true

	handler := NewHandler(s, log)

	r.Use(mw.RequestID(), mw.Logger(log), mw.Recovery(log))
	r.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateBurst))
	if ttl := cfg.CacheTTL(); ttl > 0 {
		r.Use(mw.Cache(cache.New(ttl, 2*ttl), ttl))
	}

	nurse := r.Group("/nurse")
	{
		nurse.GET("/index", handler.ListNurses)
		nurse.POST("/login", handler.Login)
		nurse.POST("/new", handler.CreateNurse)
		nurse.GET("/name/:name", handler.FindByName)
		nurse.GET("/user/:user", handler.FindByUsername)
		nurse.GET("/:id", handler.GetNurse)
		nurse.PUT("/:id", handler.UpdateNurse)
		nurse.DELETE("/:id", handler.DeleteNurse)
	}

	return r
}
