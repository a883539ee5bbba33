package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"avatar-service/internal/config"
	"avatar-service/internal/db"
	"avatar-service/internal/picture"
	"avatar-service/internal/redis"
	"avatar-service/internal/security"
)

// SessionStore resolves bearer tokens to user ids. Sessions are created by
// the auth service; this API only reads them.
type SessionStore interface {
	UserIDForToken(ctx context.Context, token string) (string, error)
}

type Server struct {
	log      *slog.Logger
	cfg      config.Config
	db       *db.DB
	redis    *redis.Client // optional; nil falls back to in-process limits
	sessions SessionStore
	pictures *picture.Service
	router   *gin.Engine
	limiter  *security.LimiterStore
}

func NewServer(log *slog.Logger, cfg config.Config, dbConn *db.DB, redisClient *redis.Client, sessions SessionStore, pictures *picture.Service) *Server {
	s := &Server{
		log:      log,
		cfg:      cfg,
		db:       dbConn,
		redis:    redisClient,
		sessions: sessions,
		pictures: pictures,
		router:   gin.New(),
		limiter:  security.NewLimiterStore(rate.Limit(10), 20, 10*time.Minute),
	}

	gin.SetMode(gin.ReleaseMode)
	r := s.router
	r.MaxMultipartMemory = picture.MaxFileSize
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.loggingMiddleware())
	r.Use(s.rateLimitMiddleware())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.health)

		profile := v1.Group("/profile")
		profile.Use(s.authMiddleware())
		{
			profile.POST("/picture", s.uploadPicture)
			profile.GET("/picture", s.getPictureURL)
		}
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}
