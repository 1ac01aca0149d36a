package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth       *auth.AuthHandler
	Events     *EventHandler
	Attendees  *AttendeeHandler
	Fields     *FieldHandler
	SiteConfig *SiteConfigHandler
	APIKeys    *APIKeyHandler
	Public     *PublicHandler
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
}

func RegisterRoutes(r chi.Router, cfg *config.Config, log *zap.Logger, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-API-KEY"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	humaConfig := huma.DefaultConfig("Event Tickets API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, humaConfig)
	api.UseMiddleware(h.Auth.Middleware(api))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/auth/discord/login", h.Auth.HandleLogin)
	r.Get("/auth/discord/callback", h.Auth.HandleCallback)

	huma.Get(api, "/events/{segment}/attendee-form", h.Public.HandleAttendeeForm)
	huma.Get(api, "/events/{segment}/success", h.Public.HandleSuccess)
	huma.Get(api, "/events/{segment}/mail", h.Public.HandleMail)

	// Protected routes
	huma.Get(api, "/me", h.Auth.HandleMe, secured)

	huma.Get(api, "/admin/events", h.Events.HandleList, secured)
	huma.Post(api, "/admin/events", h.Events.HandleCreate, secured)
	huma.Get(api, "/admin/events/{id}", h.Events.HandleGet, secured)
	huma.Put(api, "/admin/events/{id}", h.Events.HandleUpdate, secured)
	huma.Get(api, "/admin/events/{id}/cms-fields", h.Events.HandleCMSFields, secured)
	huma.Get(api, "/admin/events/{id}/cms-actions", h.Events.HandleCMSActions, secured)
	huma.Get(api, "/admin/events/{id}/tickets", h.Events.HandleListTickets, secured)
	huma.Post(api, "/admin/events/{id}/tickets", h.Events.HandleCreateTicket, secured)
	huma.Get(api, "/admin/events/{id}/reservations", h.Events.HandleListReservations, secured)
	huma.Get(api, "/admin/events/{id}/waiting-list", h.Events.HandleListWaitingList, secured)

	huma.Get(api, "/admin/events/{id}/attendees", h.Attendees.HandleList, secured)
	huma.Post(api, "/admin/events/{id}/attendees", h.Attendees.HandleCreate, secured)
	huma.Get(api, "/admin/events/{id}/attendees/{attendeeID}/qr", h.Attendees.HandleQRCode, secured)
	huma.Get(api, "/events/{segment}/checkin", h.Attendees.HandleCheckInOverview, secured)
	huma.Post(api, "/events/{segment}/checkin", h.Attendees.HandleCheckIn, secured)

	huma.Get(api, "/admin/events/{id}/fields", h.Fields.HandleList, secured)
	huma.Post(api, "/admin/events/{id}/fields", h.Fields.HandleCreate, secured)
	huma.Put(api, "/admin/fields/{id}", h.Fields.HandleUpdate, secured)
	huma.Get(api, "/admin/fields/{id}/cms-fields", h.Fields.HandleCMSFields, secured)

	huma.Get(api, "/admin/site-config", h.SiteConfig.HandleGet, secured)
	huma.Put(api, "/admin/site-config", h.SiteConfig.HandleUpdate, secured)

	huma.Get(api, "/admin/api-keys", h.APIKeys.HandleList, secured)
	huma.Post(api, "/admin/api-keys", h.APIKeys.HandleCreate, secured)
	huma.Delete(api, "/admin/api-keys/{id}", h.APIKeys.HandleDelete, secured)

	return api
}
