package main

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/config"
	"github.com/ummahhub/ummah-backend/internal/db"
	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/server"
	"github.com/ummahhub/ummah-backend/internal/storage"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config load failed")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
	if err != nil {
		log.Fatal().Err(err).Msg("firebase init failed")
	}
	var authClient *auth.Client
	if authClient, err = app.Auth(ctx); err != nil {
		log.Fatal().Err(err).Msg("firebase auth init failed")
	}
	var msgClient *messaging.Client
	if msgClient, err = app.Messaging(ctx); err != nil {
		log.Warn().Err(err).Msg("fcm unavailable; push notifications disabled")
		msgClient = nil
	}

	var uploader *storage.Uploader
	if cfg.StorageBucket != "" {
		uploader, err = storage.NewUploader(ctx, cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable; media uploads disabled")
			uploader = nil
		}
	}

	srv := server.New(nil, server.Deps{
		AuthClient:      authClient,
		MessagingClient: msgClient,
		Uploader:        uploader,
		Log:             log,
	}, gitSHA, buildTime)

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		errCh <- srv.Start(addr)
	}()

	// DB comes up in the background so a Cloud Run cold start can
	// answer health checks before the pool is ready.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Error().Err(err).Msg("db connect failed")
			return
		}
		if err := conn.AutoMigrate(
			&model.Profile{},
			&model.Space{},
			&model.SpaceEvent{},
			&model.SpaceAnnouncement{},
			&model.Post{},
			&model.PostPhoto{},
			&model.Conversation{},
			&model.Message{},
			&model.SellerRating{},
			&model.RestaurantReview{},
			&model.PushToken{},
			&model.Report{},
		); err != nil {
			log.Error().Err(err).Msg("auto migrate failed")
		}
		srv.SetDB(conn)
		log.Info().Msg("database ready")
	}()

	if err := <-errCh; err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
