package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/rkcl/league-api/internal/quiz"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "League API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the league fan site: player auction, weekly quizzes, and registrations.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Pings the KV store backing auction and quiz state.")
	getHealthz.AddRespStructure(map[string]string{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]string{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/auction/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/auction/state")
	getState.SetSummary("Get auction state")
	getState.SetDescription("Returns the full auction document plus per-team spend summary.")
	getState.AddRespStructure(auctionStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/auction/state
	postState, _ := r.NewOperationContext(http.MethodPost, "/api/auction/state")
	postState.SetSummary("Apply auction action")
	postState.SetDescription("Applies one auction action (sell, unsell, retain, setTeams, ...). Requires admin_session cookie.")
	postState.AddRespStructure(auctionActionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postState.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postState.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postState.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postState.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postState)

	// GET /api/auction/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/auction/events")
	getEvents.SetSummary("Auction event stream")
	getEvents.SetDescription("Server-Sent Events stream of auction updates; clients refetch the state on each event.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/quizzes
	listQuizzes, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes")
	listQuizzes.SetSummary("List quizzes")
	listQuizzes.AddRespStructure(map[string][]quiz.IndexEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listQuizzes)

	// GET /api/quizzes/{id}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes/{id}")
	getQuiz.SetSummary("Get quiz")
	getQuiz.SetDescription("Returns questions without answers, plus the computed play-window status.")
	getQuiz.AddRespStructure(quizResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuiz)

	// GET /api/quizzes/{id}/answers
	getAnswers, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes/{id}/answers")
	getAnswers.SetSummary("Get answer key")
	getAnswers.SetDescription("Available after the weekly window closes, or early with ?password=.")
	getAnswers.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getAnswers.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getAnswers.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getAnswers)

	// POST /api/quizzes/{id}/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/quizzes/{id}/submit")
	postSubmit.SetSummary("Submit quiz answers")
	postSubmit.SetDescription("Scores a submission during the play window. One submission per phone number.")
	postSubmit.AddReqStructure(quiz.Submission{})
	postSubmit.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSubmit.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postSubmit.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postSubmit)

	// GET /api/quizzes/{id}/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes/{id}/leaderboard")
	getBoard.SetSummary("Get leaderboard")
	getBoard.SetDescription("Ranked results with phone numbers redacted.")
	getBoard.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getBoard)

	// GET /api/quizzes/{id}/active
	getActive, _ := r.NewOperationContext(http.MethodGet, "/api/quizzes/{id}/active")
	getActive.SetSummary("Get activation override")
	getActive.SetDescription("Returns the stored flag, or null when the weekly window decides.")
	getActive.AddRespStructure(activeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getActive)

	// POST /api/quizzes/{id}/active
	postActive, _ := r.NewOperationContext(http.MethodPost, "/api/quizzes/{id}/active")
	postActive.SetSummary("Set activation override")
	postActive.SetDescription("Forces the quiz on or off regardless of the weekly window. Requires admin_session cookie.")
	postActive.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	postActive.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postActive.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postActive)

	// GET /api/registrations
	getRegs, _ := r.NewOperationContext(http.MethodGet, "/api/registrations")
	getRegs.SetSummary("List registrations")
	getRegs.SetDescription("Roster parsed from the published CSV; pass ?refresh=1 to bypass the cache.")
	getRegs.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getRegs.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(getRegs)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with username and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(loginRequest{})
	postLogin.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(errorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
