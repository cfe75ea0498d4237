package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/aletube/catalogd/catalog"
	"github.com/aletube/catalogd/handler"
	"github.com/aletube/catalogd/model"
	"github.com/aletube/catalogd/storage"
)

func main() {
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	apiKey := getParam("YOUTUBE_API_KEY", "")
	channelID := model.ChannelID(getParam("YOUTUBE_CHANNEL_ID", ""))
	if apiKey == "" || channelID == "" {
		logger.Error("missing YOUTUBE_API_KEY or YOUTUBE_CHANNEL_ID")
		os.Exit(1)
	}

	refreshInterval, err := time.ParseDuration(getParam("REFRESH_INTERVAL", "5m"))
	if err != nil {
		logger.Error("unable to parse refresh interval", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var prefRepo storage.PreferenceRepository = storage.NewMemory()
	if host := getParam("POSTGRES_HOST", ""); host != "" {
		postgres, err := storage.NewPostgres(storage.PostgresInfo{
			Host:     host,
			Port:     getParam("POSTGRES_PORT", "5432"),
			User:     getParam("POSTGRES_USER", "catalogd"),
			Password: getParam("POSTGRES_PASSWORD", "catalogd"),
			Database: getParam("POSTGRES_DB", "catalogd"),
		})
		if err != nil {
			logger.Error("unable to connect to postgres", slog.String("err", err.Error()))
			os.Exit(1)
		}
		prefRepo = storage.NewPostgresPreferenceRepository(postgres)
	}

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("unable to create youtube service", slog.String("err", err.Error()))
		os.Exit(1)
	}
	yt := catalog.NewYoutube(ytClient)

	service := catalog.NewService(yt, yt, yt, logger)
	keeper := catalog.NewKeeper(service, channelID, refreshInterval, logger)
	refresher := catalog.NewRefresher(yt, channelID, refreshInterval, logger)
	go keeper.Run(ctx)
	go refresher.Run(ctx)
	logger.Info("catalog service started")

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", slog.String("err", err.Error()))
		os.Exit(1)
	}
	go http.ListenAndServe(fmt.Sprintf(":%d", port), handler.NewServer(keeper, refresher, prefRepo, logger))
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done
	cancel()

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
