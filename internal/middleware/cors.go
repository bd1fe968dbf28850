package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS opens the API to any origin. Only enabled for local development.
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:       []string{"*"},
	AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders:       []string{"Content-Type"},
	OptionsSuccessStatus: http.StatusNoContent,
	MaxAge:               300,
})
