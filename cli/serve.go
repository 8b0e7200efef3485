package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"sleeper-league-bot/handlers"
	"sleeper-league-bot/interfaces"
	"sleeper-league-bot/middleware"
	"sleeper-league-bot/services"
	"sleeper-league-bot/templates"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rankings page and the operator API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default SERVER_HOST:SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	router, err := a.router()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.GetServerAddress()
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("Listening on http://%s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// router builds the operator API routes
func (a *app) router() (*mux.Router, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	auth := services.NewAuthService(a.cfg.Auth.AdminKeyHash, a.cfg.Auth.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(auth)

	var pinger interfaces.Pinger
	var posts interfaces.PostStore
	if a.db != nil {
		pinger = a.db
		posts = a.posts
	}

	health := handlers.NewHealthHandler(a.sleeper, pinger)
	login := handlers.NewAuthHandler(auth)
	ranking := handlers.NewRankingsHandler(tmpl, a.rankings)
	jobs := handlers.NewJobsHandler(a.runner, posts)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger, middleware.SecurityMiddleware)

	r.HandleFunc("/healthz", health.Health).Methods(http.MethodGet)
	r.HandleFunc("/rankings", ranking.RankingsPage).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", login.LoginAPI).Methods(http.MethodPost)
	api.HandleFunc("/rankings", ranking.GetRankingsAPI).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	protected.HandleFunc("/jobs", jobs.ListJobs).Methods(http.MethodGet)
	protected.HandleFunc("/jobs/{job}/run", jobs.RunJob).Methods(http.MethodPost)
	protected.HandleFunc("/posts", jobs.ListPosts).Methods(http.MethodGet)

	return r, nil
}
