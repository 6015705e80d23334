package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wricardo/tictacroom/archive"
	"github.com/wricardo/tictacroom/auth"
	"github.com/wricardo/tictacroom/game/service"
	"github.com/wricardo/tictacroom/game/session"
	"github.com/wricardo/tictacroom/transport/websocket"
)

// defaultRecentLimit applies when the recent-matches query has no limit.
const defaultRecentLimit = 20

// Server represents the REST API server
type Server struct {
	service   service.RoomService
	hub       *websocket.Hub
	verifier  *auth.Verifier
	archiver  archive.Archive
	maxRecent int
	router    *mux.Router
}

// NewServer creates a new API server
func NewServer(roomService service.RoomService, hub *websocket.Hub, verifier *auth.Verifier, archiver archive.Archive, maxRecent int) *Server {
	s := &Server{
		service:   roomService,
		hub:       hub,
		verifier:  verifier,
		archiver:  archiver,
		maxRecent: maxRecent,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()

	// Token minting for anonymous players. Everything authenticated hangs
	// off a token from here (or one issued out of band).
	api.HandleFunc("/auth/guest", s.handleGuestToken).Methods("POST")

	// Room lookup surface. Creation needs a verified identity; lookup is
	// public so invite links can show the room before login.
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods("POST")
	api.HandleFunc("/rooms/{code}", s.handleGetRoom).Methods("GET")

	// Match history
	api.HandleFunc("/matches/recent", s.handleRecentMatches).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// identityFromRequest resolves the caller's identity from the Authorization
// header, or from the token query parameter for websocket attaches.
func (s *Server) identityFromRequest(r *http.Request) (string, error) {
	token := ""
	if header := r.Header.Get("Authorization"); header != "" {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	return s.verifier.Verify(token)
}

// Handlers

func (s *Server) handleGuestToken(w http.ResponseWriter, r *http.Request) {
	identity := auth.NewGuestIdentity()
	token, err := s.verifier.Sign(identity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"identity": identity,
		"token":    token,
	})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		VsAI bool `json:"vs_ai"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// The creator is seated without a live connection; attaching over the
	// websocket and joining the room rebinds the seat.
	room, err := s.service.CreateRoom(r.Context(), identity, "", req.VsAI)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"room": room})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	room, err := s.service.GetRoom(r.Context(), code)
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"room": room})
}

func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	if _, err := s.identityFromRequest(r); err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > s.maxRecent {
		limit = s.maxRecent
	}

	matches, err := s.archiver.Recent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if matches == nil {
		matches = []*archive.MatchRecord{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// handleWebSocket verifies the identity and hands the connection to the hub.
// Verification failure refuses the connection before any upgrade.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	s.hub.ServeWS(w, r, identity)
}
