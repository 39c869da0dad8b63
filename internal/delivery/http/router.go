package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"datepoll/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, responseController *controllers.ResponseController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /api/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/events/{slug}", eventController.GetEventView)
	mux.HandleFunc("PATCH /api/events/{slug}", eventController.UpdateEvent)
	mux.HandleFunc("POST /api/events/{slug}/responses", responseController.SubmitResponse)
	mux.HandleFunc("PUT /api/events/{slug}/responses/{responseID}", responseController.UpdateResponse)

	// Liveness
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
