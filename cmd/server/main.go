package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/you/go-travel-gateway/internal/amadeus"
	"github.com/you/go-travel-gateway/internal/auth"
	"github.com/you/go-travel-gateway/internal/config"
	"github.com/you/go-travel-gateway/internal/httpx"
	"github.com/you/go-travel-gateway/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Loading config; missing provider credentials abort here.
	cfg := config.Load()

	client := amadeus.NewClient(
		cfg.AmadeusClientID,
		cfg.AmadeusClientSecret,
		amadeus.WithBaseURL(cfg.AmadeusURL),
		amadeus.WithHTTPClient(&http.Client{Timeout: cfg.ClientTimeout}),
	)
	searchSvc := service.NewSearchService(client, cfg.SearchTimeout, cfg.CacheTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("/", httpx.LivenessHandler())
	mux.Handle("/metrics", promhttp.Handler())

	searchH := http.Handler(httpx.SearchHandler(searchSvc))
	hotelH := http.Handler(httpx.HotelSearchHandler(client))
	if cfg.JWTSecret != "" {
		mux.HandleFunc("/auth/login", auth.LoginHandler(cfg))
		searchH = auth.RequireJWT(cfg, searchH)
		hotelH = auth.RequireJWT(cfg, hotelH)
	}
	mux.Handle("/search", searchH)
	mux.Handle("/hotel-search", hotelH)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	root := c.Handler(httpx.MetricsMiddleware(mux))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           root,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Running http server on a secondary goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		var err error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			log.Info().Msg("TLS enabled")
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info().Msg("server stopped")
}
