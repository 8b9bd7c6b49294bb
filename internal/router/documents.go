package router

import (
	"net/http"

	"github.com/BerylCAtieno/pdf-signer/internal/config"
	"github.com/BerylCAtieno/pdf-signer/internal/handlers"
	"github.com/BerylCAtieno/pdf-signer/internal/middleware"
	"github.com/BerylCAtieno/pdf-signer/internal/services"
	"github.com/BerylCAtieno/pdf-signer/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(signService services.SigningService, cfg *config.Config, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.Recovery(logger))

	signHandler := handlers.NewSignHandler(signService, logger, cfg.MultipartMaxMemory)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// OPTIONS is listed so preflight requests reach the CORS middleware.
	api.HandleFunc("/sign", signHandler.SignDocument).Methods(http.MethodPost, http.MethodOptions)

	return r
}
