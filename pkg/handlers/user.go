package handlers

import (
	"log/slog"
	"net/http"

	"uigallery/pkg/apperr"
	"uigallery/pkg/ratelimit"
	"uigallery/pkg/session"
	"uigallery/pkg/user"
)

type RegisterForm struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginForm struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type UserHandler struct {
	Service user.ServiceInterface
	Limiter *ratelimit.LoginLimiter
	Logger  *slog.Logger
}

func NewUserHandler(service user.ServiceInterface, limiter *ratelimit.LoginLimiter, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		Service: service,
		Limiter: limiter,
		Logger:  logger,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Register(req.Email, req.Username, req.Password)
	if err != nil {
		writeAppErr(w, h.Logger, "register", err)
		return
	}

	session.Issue(w, u)
	if ok := writeJSONStatus(w, h.Logger, u, http.StatusCreated); ok {
		h.Logger.Info("register", "user", u.ID)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if err := h.Limiter.Check(r.Context(), req.Identity); err != nil {
		writeAppErr(w, h.Logger, "login", err)
		return
	}

	u, err := h.Service.Login(req.Identity, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.CodeBadCredentials) {
			h.Limiter.RecordFailure(r.Context(), req.Identity)
		}
		writeAppErr(w, h.Logger, "login", err)
		return
	}

	h.Limiter.Reset(r.Context(), req.Identity)
	session.Issue(w, u)
	if ok := writeJSON(w, h.Logger, u); ok {
		h.Logger.Info("login", "user", u.ID)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	writeJSON(w, h.Logger, map[string]string{"message": "success"})
}

// Me returns the validated principal put in context by the API guard.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := session.UserFromContext(r.Context())
	if !ok {
		writeAppErr(w, h.Logger, "me", apperr.New(apperr.CodeUnauthenticated, "unauthorized"))
		return
	}
	writeJSON(w, h.Logger, u)
}
