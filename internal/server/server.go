package server

import (
	"net/http"
	"net/url"
	"strings"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/handler"
	appmw "github.com/ummahhub/ummah-backend/internal/middleware"
	"github.com/ummahhub/ummah-backend/internal/push"
	"github.com/ummahhub/ummah-backend/internal/realtime"
	"github.com/ummahhub/ummah-backend/internal/repository"
	"github.com/ummahhub/ummah-backend/internal/service"
	"github.com/ummahhub/ummah-backend/internal/storage"
	"gorm.io/gorm"
)

type Deps struct {
	AuthClient      *auth.Client
	MessagingClient *messaging.Client
	Uploader        *storage.Uploader
	Log             zerolog.Logger
}

type Server struct {
	e     *echo.Echo
	repos []interface{ SetDB(*gorm.DB) }
	sha   string
	build string
}

func New(db *gorm.DB, deps Deps, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			return u.Scheme == "http" || u.Scheme == "https", nil
		},
	}))

	postRepo := repository.NewPostRepository(db)
	convRepo := repository.NewConversationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	tokenRepo := repository.NewPushTokenRepository(db)
	reportRepo := repository.NewReportRepository(db)

	hub := realtime.NewHub(deps.Log.With().Str("component", "feed").Logger())

	var notifier push.Notifier = push.NopNotifier{}
	if deps.MessagingClient != nil {
		notifier = push.NewSender(deps.MessagingClient, tokenRepo, deps.Log.With().Str("component", "push").Logger())
	}

	postSvc := service.NewPostService(postRepo)
	ratingSvc := service.NewRatingService(ratingRepo, postRepo)
	convSvc := service.NewConversationService(convRepo, postRepo, profileRepo, hub, notifier,
		deps.Log.With().Str("component", "conversations").Logger())
	spaceSvc := service.NewSpaceService(spaceRepo)
	reviewSvc := service.NewReviewService(reviewRepo)
	profileSvc := service.NewProfileService(profileRepo, tokenRepo)
	reportSvc := service.NewReportService(reportRepo)

	postHandler := handler.NewPostHandler(postSvc, ratingSvc)
	convHandler := handler.NewConversationHandler(convSvc)
	feedHandler := handler.NewFeedHandler(hub, convSvc, deps.Log.With().Str("component", "feed").Logger())
	spaceHandler := handler.NewSpaceHandler(spaceSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	mediaHandler := handler.NewMediaHandler(deps.Uploader)

	authMw := appmw.NewAuthMiddleware(deps.AuthClient)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.GET("/posts", postHandler.List, authMw.OptionalAuth)
	api.GET("/posts/:id", postHandler.Get, authMw.OptionalAuth)
	api.POST("/posts", postHandler.Create, authMw.RequireAuth)
	api.PUT("/posts/:id", postHandler.Update, authMw.RequireAuth)
	api.POST("/posts/:id/sold", postHandler.MarkSold, authMw.RequireAuth)
	api.PUT("/posts/:id/rating", postHandler.Rate, authMw.RequireAuth)
	api.GET("/me/posts", postHandler.ListMine, authMw.RequireAuth)

	api.POST("/posts/:id/conversations", convHandler.StartFromPost, authMw.RequireAuth)
	api.GET("/conversations", convHandler.ListInbox, authMw.RequireAuth)
	api.GET("/conversations/:id", convHandler.Get, authMw.RequireAuth)
	api.GET("/conversations/:id/messages", convHandler.ListMessages, authMw.RequireAuth)
	api.POST("/conversations/:id/messages", convHandler.CreateMessage, authMw.RequireAuth)
	api.POST("/conversations/:id/read", convHandler.MarkRead, authMw.RequireAuth)
	api.GET("/conversations/:id/unread", convHandler.Unread, authMw.RequireAuth)
	api.GET("/conversations/:id/feed", feedHandler.Subscribe, authMw.RequireAuth)
	api.GET("/me/unread", convHandler.GlobalUnread, authMw.RequireAuth)

	api.GET("/spaces", spaceHandler.List, authMw.OptionalAuth)
	api.GET("/spaces/:id", spaceHandler.Get, authMw.OptionalAuth)
	api.GET("/spaces/:id/events", spaceHandler.ListEvents, authMw.OptionalAuth)
	api.GET("/spaces/:id/announcements", spaceHandler.ListAnnouncements, authMw.OptionalAuth)
	api.POST("/spaces", spaceHandler.Create, authMw.RequireAuth)
	api.PUT("/spaces/:id", spaceHandler.Update, authMw.RequireAuth)
	api.DELETE("/spaces/:id", spaceHandler.Delete, authMw.RequireAuth)
	api.POST("/spaces/:id/events", spaceHandler.CreateEvent, authMw.RequireAuth)
	api.POST("/spaces/:id/announcements", spaceHandler.CreateAnnouncement, authMw.RequireAuth)

	api.GET("/restaurants/:placeId/reviews", reviewHandler.ListByPlace, authMw.OptionalAuth)
	api.POST("/restaurants/:placeId/reviews", reviewHandler.Submit, authMw.RequireAuth)

	api.GET("/users/:uid/profile", profileHandler.Get, authMw.OptionalAuth)
	api.GET("/me/profile", profileHandler.GetMine, authMw.RequireAuth)
	api.PUT("/me/profile", profileHandler.Upsert, authMw.RequireAuth)
	api.POST("/me/push-tokens", profileHandler.RegisterPushToken, authMw.RequireAuth)

	api.POST("/reports", reportHandler.Submit, authMw.RequireAuth)
	api.POST("/media", mediaHandler.Upload, authMw.RequireAuth)

	return &Server{
		e: e,
		repos: []interface{ SetDB(*gorm.DB) }{
			postRepo, convRepo, ratingRepo, spaceRepo,
			reviewRepo, profileRepo, tokenRepo, reportRepo,
		},
		sha:   sha,
		build: buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the connection into every repository; the server is
// started before the pool is up so cold starts serve health checks
// immediately.
func (s *Server) SetDB(db *gorm.DB) {
	for _, r := range s.repos {
		r.SetDB(db)
	}
}
