package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		// frame routes answer both the initial GET and button POSTs
		r.Get("/", h.StartFrame)
		r.Post("/", h.StartFrame)
		r.Get("/card-select", h.CardSelectFrame)
		r.Post("/card-select", h.CardSelectFrame)
		r.Post("/mint", h.MintTransaction)
		r.Post("/card-reveal", h.CardRevealFrame)
		r.Post("/card-reveal/{id}", h.CardRevealFrame)
		r.Get("/card-reading-{id}", h.CardReadingFrame)
		r.Post("/card-reading-{id}", h.CardReadingFrame)

		r.Get("/welcome-img", h.WelcomeImage)
		r.Get("/card-image/{id}", h.CardImage)
	})

	r.Route("/v1", func(r chi.Router) {
		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
			r.Get("/readings", h.ListReadings)
		})
	})

	fs := http.FileServer(http.Dir(h.assetsDir))
	r.Get("/*", fs.ServeHTTP)
}

func (h *Handler) InitAuth(jwtKey string) {
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"exp":        expirationTime,
	})

	log.Debugf("DEBUG: JWT for testing expires soon : %s", tokenString)
}

// TokenAuth exposes the verifier so operators and tests can mint tokens.
func (h *Handler) TokenAuth() *jwtauth.JWTAuth {
	return h.tokenAuth
}
