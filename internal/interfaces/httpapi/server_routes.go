package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, authenticator TokenAuthenticator) {
	mux.HandleFunc("POST /register", handler.Register)
	mux.HandleFunc("POST /login", handler.Login)
	mux.Handle("POST /logout", RequireAuth(authenticator, http.HandlerFunc(handler.Logout)))
	mux.Handle("POST /update_password", RequireAuth(authenticator, http.HandlerFunc(handler.UpdatePassword)))
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler, authenticator TokenAuthenticator) {
	mux.Handle("GET /users", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.ListUsers))))
	mux.Handle("GET /users/{userID}", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.GetUser))))
	mux.Handle("GET /user", RequireAuth(authenticator, http.HandlerFunc(handler.CurrentUser)))
	mux.Handle("POST /user/update", RequireAuth(authenticator, http.HandlerFunc(handler.UpdateProfile)))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, authenticator TokenAuthenticator) {
	mux.Handle("GET /teams", RequireAuth(authenticator, http.HandlerFunc(handler.ListTeams)))
	mux.Handle("GET /teams/{teamID}", RequireAuth(authenticator, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("GET /teams/{teamID}/fixtures", RequireAuth(authenticator, http.HandlerFunc(handler.ListTeamFixtures)))
	mux.Handle("POST /teams", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.CreateTeam))))
	mux.Handle("PATCH /teams/{teamID}", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.UpdateTeam))))
	mux.Handle("DELETE /teams/{teamID}", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.DeleteTeam))))
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler, authenticator TokenAuthenticator) {
	mux.Handle("GET /fixtures", RequireAuth(authenticator, http.HandlerFunc(handler.SearchFixtures)))
	mux.Handle("GET /fixtures/{fixtureID}", RequireAuth(authenticator, http.HandlerFunc(handler.GetFixture)))
	mux.Handle("POST /fixtures", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.CreateFixture))))
	mux.Handle("PATCH /fixtures/{fixtureID}", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.UpdateFixture))))
	mux.Handle("DELETE /fixtures/{fixtureID}", RequireAuth(authenticator, RequireAdmin(http.HandlerFunc(handler.DeleteFixture))))
}
