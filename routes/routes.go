package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/betting-league/handlers"
	"github.com/Dosada05/betting-league/metrics"
	"github.com/Dosada05/betting-league/middleware"
	"github.com/Dosada05/betting-league/models"
)

// route binds one endpoint to its handler and the roles allowed to call
// it. A nil Roles slice means public; an empty non-nil slice means any
// authenticated user.
type route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Roles   []models.UserRole
}

type Handlers struct {
	Auth      *handlers.AuthHandler
	Team      *handlers.TeamHandler
	Player    *handlers.PlayerHandler
	Referee   *handlers.RefereeHandler
	Match     *handlers.MatchHandler
	Wallet    *handlers.WalletHandler
	Wager     *handlers.WagerHandler
	Stats     *handlers.StatsHandler
	Admin     *handlers.AdminHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/ws/results", h.WebSocket.ServeResults)
	router.Handle("/metrics", metrics.Handler())

	admin := []models.UserRole{models.RoleAdmin}
	anyAuthenticated := []models.UserRole{}
	bettor := []models.UserRole{models.RoleBettor}

	apiRoutes := []route{
		{http.MethodGet, "/teams", h.Team.List, anyAuthenticated},
		{http.MethodPost, "/teams", h.Team.Create, admin},
		{http.MethodGet, "/teams/{id}", h.Team.GetByID, anyAuthenticated},
		{http.MethodPut, "/teams/{id}", h.Team.Rename, admin},
		{http.MethodDelete, "/teams/{id}", h.Team.Delete, admin},
		{http.MethodPost, "/teams/{id}/crest", h.Team.UploadCrest, admin},

		{http.MethodGet, "/players", h.Player.List, anyAuthenticated},
		{http.MethodGet, "/players/{id}", h.Player.GetByID, anyAuthenticated},
		{http.MethodPost, "/players/assign", h.Player.Assign, admin},

		{http.MethodGet, "/referees", h.Referee.List, anyAuthenticated},
		{http.MethodGet, "/referees/{id}", h.Referee.GetByID, anyAuthenticated},

		{http.MethodGet, "/matches", h.Match.List, anyAuthenticated},
		{http.MethodGet, "/matches/{id}", h.Match.GetByID, anyAuthenticated},
		{http.MethodPost, "/matches", h.Match.Create, admin},
		{http.MethodPut, "/matches/{id}", h.Match.UpdateKickoff, admin},
		{http.MethodDelete, "/matches/{id}", h.Match.Delete, admin},
		{http.MethodPost, "/matches/{id}/simulate", h.Match.Simulate, admin},
		{http.MethodPost, "/matches/generate", h.Match.GenerateSchedule, admin},

		{http.MethodGet, "/balance", h.Wallet.GetBalance, bettor},
		{http.MethodPost, "/recharge", h.Wallet.Recharge, bettor},
		{http.MethodGet, "/recharges", h.Wallet.ListRecharges, bettor},
		{http.MethodPost, "/wagers", h.Wager.Place, bettor},
		{http.MethodGet, "/wagers", h.Wager.ListMine, bettor},

		{http.MethodGet, "/team-stats", h.Stats.TeamStats, anyAuthenticated},
		{http.MethodGet, "/schedule-graph", h.Stats.ScheduleGraph, anyAuthenticated},

		{http.MethodPost, "/users/{id}/role", h.Admin.ChangeUserRole, admin},
		{http.MethodGet, "/role-changes", h.Admin.ListRoleChanges, admin},
	}

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/api", func(r chi.Router) {
		for _, rt := range apiRoutes {
			handler := http.Handler(rt.Handler)
			if rt.Roles != nil {
				if len(rt.Roles) > 0 {
					handler = middleware.Authorize(rt.Roles...)(handler)
				}
				handler = authenticate(handler)
			}
			r.Method(rt.Method, rt.Pattern, handler)
		}
	})
}
