package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"shotwall/cmd/app"
	"shotwall/internal/config"
	handlers "shotwall/internal/handler"
	"shotwall/internal/middleware"
	"shotwall/internal/models"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	api.Handle("/me/shots", middleware.RequireAuth(http.HandlerFunc(handler.GetMyShots))).Methods(http.MethodGet)

	api.HandleFunc("/categories", handler.GetCategories).Methods(http.MethodGet)

	api.HandleFunc("/shots", handler.GetShots).Methods(http.MethodGet)
	api.HandleFunc("/shots/{id:[0-9]+}", handler.GetShot).Methods(http.MethodGet)
	api.HandleFunc("/shots/{id:[0-9]+}/image", handler.GetShotImage).Methods(http.MethodGet)
	api.Handle("/shots", middleware.RequireAuth(http.HandlerFunc(handler.CreateShot))).Methods(http.MethodPost)
	api.Handle("/shots/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(handler.DeleteShot))).Methods(http.MethodDelete)
	api.Handle("/shots/{id:[0-9]+}/status",
		middleware.RequireRole(models.RoleAdmin)(http.HandlerFunc(handler.ModerateShot))).Methods(http.MethodPatch)
	api.Handle("/shots/{id:[0-9]+}/image", middleware.RequireAuth(http.HandlerFunc(handler.UploadShotImage))).Methods(http.MethodPost)
	api.Handle("/shots/{id:[0-9]+}/save", middleware.RequireAuth(http.HandlerFunc(handler.SaveShot))).Methods(http.MethodPost)
	api.Handle("/shots/{id:[0-9]+}/save", middleware.RequireAuth(http.HandlerFunc(handler.UnsaveShot))).Methods(http.MethodDelete)

	api.Handle("/boards", middleware.RequireAuth(http.HandlerFunc(handler.GetBoards))).Methods(http.MethodGet)
	api.Handle("/boards", middleware.RequireAuth(http.HandlerFunc(handler.CreateBoard))).Methods(http.MethodPost)
	api.Handle("/boards/{id:[0-9]+}", middleware.RequireAuth(http.HandlerFunc(handler.DeleteBoard))).Methods(http.MethodDelete)
	api.Handle("/boards/{id:[0-9]+}/shots", middleware.RequireAuth(http.HandlerFunc(handler.AddShotToBoard))).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("starting server: %v", err)
	}
}
