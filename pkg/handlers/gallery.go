package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"uigallery/pkg/apperr"
	"uigallery/pkg/gallery"
	"uigallery/pkg/session"
)

type GalleryHandler struct {
	Service gallery.ServiceInterface
	Logger  *slog.Logger
}

func NewGalleryHandler(service gallery.ServiceInterface, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *GalleryHandler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Logger, h.Service.GetAll())
}

func (h *GalleryHandler) GetItemsByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := mux.Vars(r)[muxVarCategory]
	if !ok {
		writeAppErr(w, h.Logger, "items by category", apperr.New(apperr.CodeInputMissing, "invalid category"))
		return
	}

	writeJSON(w, h.Logger, h.Service.GetByCategory(category))
}

func (h *GalleryHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)[muxVarItemID]
	if !ok {
		writeAppErr(w, h.Logger, "item by id", apperr.New(apperr.CodeInputMissing, "invalid item id"))
		return
	}

	item, err := h.Service.GetByID(itemID)
	if err != nil {
		writeAppErr(w, h.Logger, "item by id", err)
		return
	}

	writeJSON(w, h.Logger, item)
}

func (h *GalleryHandler) GetItemBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := mux.Vars(r)[muxVarSlug]
	if !ok {
		writeAppErr(w, h.Logger, "item by slug", apperr.New(apperr.CodeInputMissing, "invalid slug"))
		return
	}

	item, err := h.Service.GetBySlug(slug)
	if err != nil {
		writeAppErr(w, h.Logger, "item by slug", err)
		return
	}

	writeJSON(w, h.Logger, item)
}

func (h *GalleryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var newItem gallery.Item
	if ok := DecodeJSONBody(w, r, &newItem); !ok {
		return
	}

	author, ok := session.UserFromContext(r.Context())
	if !ok {
		writeAppErr(w, h.Logger, "create item", apperr.New(apperr.CodeUnauthenticated, "unauthorized"))
		return
	}

	if err := h.Service.Create(&newItem, author); err != nil {
		writeAppErr(w, h.Logger, "create item", err)
		return
	}

	if ok := writeJSONStatus(w, h.Logger, newItem, http.StatusCreated); ok {
		h.Logger.Info("new item created", "item", newItem.ID, "user", author.ID)
	}
}

func (h *GalleryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)[muxVarItemID]
	if !ok {
		writeAppErr(w, h.Logger, "update item", apperr.New(apperr.CodeInputMissing, "invalid item id"))
		return
	}

	var updated gallery.Item
	if ok := DecodeJSONBody(w, r, &updated); !ok {
		return
	}

	item, err := h.Service.Update(itemID, &updated)
	if err != nil {
		writeAppErr(w, h.Logger, "update item", err)
		return
	}

	if ok := writeJSON(w, h.Logger, item); ok {
		h.Logger.Info("item updated", "item", itemID)
	}
}

func (h *GalleryHandler) FeatureItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)[muxVarItemID]
	if !ok {
		writeAppErr(w, h.Logger, "feature item", apperr.New(apperr.CodeInputMissing, "invalid item id"))
		return
	}

	var req struct {
		Featured bool `json:"featured"`
	}
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	item, err := h.Service.SetFeatured(itemID, req.Featured)
	if err != nil {
		writeAppErr(w, h.Logger, "feature item", err)
		return
	}

	if ok := writeJSON(w, h.Logger, item); ok {
		h.Logger.Info("item featured", "item", itemID, "featured", req.Featured)
	}
}

func (h *GalleryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)[muxVarItemID]
	if !ok {
		writeAppErr(w, h.Logger, "delete item", apperr.New(apperr.CodeInputMissing, "invalid item id"))
		return
	}

	if err := h.Service.Delete(itemID); err != nil {
		writeAppErr(w, h.Logger, "delete item", err)
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"message": "success"}); ok {
		h.Logger.Info("item delete", muxVarItemID, itemID)
	}
}
