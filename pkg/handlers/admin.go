package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"uigallery/pkg/apperr"
	"uigallery/pkg/session"
	"uigallery/pkg/user"
)

const AdminActionPattern = "disable|enable|promote|demote|logout"

// AdminHandler covers user administration. Every route is behind the full
// API guard; the cached admin-claim cookie alone never reaches this code.
type AdminHandler struct {
	Service user.ServiceInterface
	Logger  *slog.Logger
}

func NewAdminHandler(service user.ServiceInterface, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAll()
	if err != nil {
		writeAppErr(w, h.Logger, "list users", err)
		return
	}
	writeJSON(w, h.Logger, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := mux.Vars(r)[muxVarUserID]
	if !ok {
		writeAppErr(w, h.Logger, "delete user", apperr.New(apperr.CodeInputMissing, "invalid user id"))
		return
	}

	if err := h.Service.Delete(userID); err != nil {
		writeAppErr(w, h.Logger, "delete user", err)
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"message": "success"}); ok {
		h.Logger.Info("user delete", muxVarUserID, userID)
	}
}

func (h *AdminHandler) UserAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, ok1 := vars[muxVarUserID]
	action, ok2 := vars[muxVarAction]
	if !ok1 || !ok2 {
		writeAppErr(w, h.Logger, "user action", apperr.New(apperr.CodeInputMissing, "invalid user action"))
		return
	}

	if admin, ok := session.UserFromContext(r.Context()); ok && admin.ID == userID {
		// запрет пилить сук, на котором сидишь
		writeAppErr(w, h.Logger, "user action", apperr.New(apperr.CodeForbidden, "cannot apply to own account"))
		return
	}

	var err error
	switch action {
	case "disable":
		err = h.Service.SetDisabled(userID, true)
	case "enable":
		err = h.Service.SetDisabled(userID, false)
	case "promote":
		err = h.Service.SetRole(userID, user.RoleAdmin)
	case "demote":
		err = h.Service.SetRole(userID, user.RoleUser)
	case "logout":
		err = h.Service.ForceLogout(userID)
	default:
		err = apperr.New(apperr.CodeBadPayload, "invalid action")
	}
	if err != nil {
		writeAppErr(w, h.Logger, "user action", err)
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"message": "success"}); ok {
		h.Logger.Info("user action", muxVarUserID, userID, muxVarAction, action)
	}
}
