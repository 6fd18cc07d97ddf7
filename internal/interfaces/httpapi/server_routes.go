package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/state", handler.GetMatchState)
	mux.HandleFunc("GET /v1/matches/{matchID}/scorecard", handler.GetScorecard)
	mux.HandleFunc("GET /v1/matches/{matchID}/insights", handler.GetInsights)
	mux.HandleFunc("GET /v1/matches/{matchID}/players/{playerID}/stats", handler.GetPlayerMatchStats)
	mux.HandleFunc("GET /v1/matches/{matchID}/live", handler.LiveMatch)
	mux.HandleFunc("GET /v1/players/{playerID}/career", handler.GetPlayerCareer)
}

// registerAdminRoutes wires every write behind the X-Admin-Token guard.
func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/matches", RequireAdminToken(adminToken, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/matches/{matchID}/ball", RequireAdminToken(adminToken, http.HandlerFunc(handler.SubmitDelivery)))
	mux.Handle("POST /v1/matches/{matchID}/innings/complete", RequireAdminToken(adminToken, http.HandlerFunc(handler.CompleteInnings)))
	mux.Handle("POST /v1/matches/{matchID}/complete", RequireAdminToken(adminToken, http.HandlerFunc(handler.CompleteMatch)))
	mux.Handle("POST /v1/internal/career/rebuild", RequireAdminToken(adminToken, http.HandlerFunc(handler.RebuildCareer)))
}
