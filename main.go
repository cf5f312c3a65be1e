package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kkiihun/global-board/internal/auth"
	"github.com/kkiihun/global-board/internal/config"
	"github.com/kkiihun/global-board/internal/db"
	"github.com/kkiihun/global-board/internal/handlers"
	"github.com/kkiihun/global-board/internal/logger"
	appmiddleware "github.com/kkiihun/global-board/internal/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New(0)

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal("db open failed", "error", err)
	}
	defer store.Close()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := handlers.NewAuthHandler(store, tokens, log)
	postsHandler := handlers.NewPostsHandler(store, log)
	pagesHandler := handlers.NewPagesHandler(store, tokens, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", handlers.Health)

	// 30 page loads per minute per IP
	pageLimiter := appmiddleware.NewRateLimiter(30, time.Minute)
	r.With(pageLimiter.Limit).Get("/", pagesHandler.Home)
	r.With(pageLimiter.Limit).Get("/login-page", pagesHandler.LoginPage)

	// 5 login attempts per minute per IP
	loginLimiter := appmiddleware.NewRateLimiter(5, time.Minute)
	r.With(loginLimiter.Limit).Post("/login", authHandler.Login)
	r.Post("/signup", authHandler.Signup)
	r.Post("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Session(store, tokens))
		r.Post("/posts", postsHandler.Create)
		r.Put("/posts/{id}", postsHandler.Update)
		r.Delete("/posts/{id}", postsHandler.Delete)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
