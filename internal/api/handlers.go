package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/authservice"
	"github.com/starford/skald/internal/noteservice"
)

// Handler holds the API route handlers.
type Handler struct {
	authSvc    *authservice.Service
	noteSvc    *noteservice.Service
	cookieName string
	cookieTTL  time.Duration
}

// NewHandler creates a new Handler. cookieTTL is the session lifetime and
// doubles as the cookie max-age.
func NewHandler(authSvc *authservice.Service, noteSvc *noteservice.Service, cookieName string, cookieTTL time.Duration) *Handler {
	return &Handler{
		authSvc:    authSvc,
		noteSvc:    noteSvc,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// sessionCookie builds the session cookie: whole-path, http-only,
// same-site lax, max-age matching the token lifetime. maxAge < 0 produces
// the clearing cookie used by logout.
func (h *Handler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login handles POST /auth/login. Success returns the raw token as the
// response body (for bearer-header clients) and sets it as a session
// cookie. Bad credentials yield 400 with a fixed message; store failures
// yield a generic 500 with no internal detail.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid email or password"))
			return
		}
		slog.Error("login failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, int(h.cookieTTL.Seconds())))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Token))
}

// Logout handles GET /auth/logout. It replaces the session cookie with an
// already-expired empty one. Sessions are stateless, so this is advisory:
// a bearer-header client holding a copy of the token keeps it until expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ListNotes handles GET /notes. Results are scoped to the verified caller
// and optionally filtered to notes created after the RFC3339 "from" query
// parameter.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing token"))
		return
	}

	var from *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid 'from' timestamp, want RFC3339"))
			return
		}
		from = &t
	}

	notes, err := h.noteSvc.List(r.Context(), identity, from)
	if err != nil {
		slog.Error("list notes failed", slog.Int64("user_id", identity.UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	views := make([]NoteView, len(notes))
	for i, n := range notes {
		views[i] = newNoteView(n)
	}
	writeJSON(w, http.StatusOK, NotesResponse{Author: identity.Email, Notes: views})
}

// CreateNote handles POST /notes. The note's owner is the verified caller;
// the body carries only content and tags.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("missing token"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req PostNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	note, err := h.noteSvc.Create(r.Context(), identity, req.Content, req.Tags)
	if err != nil {
		slog.Error("create note failed", slog.Int64("user_id", identity.UserID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, newNoteView(*note))
}
