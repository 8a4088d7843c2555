package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/logger"
	"github.com/studycircle-dev/studycircle/internal/utils"
)

func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var body api.CreateContentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var id domain.ContentId
	var err error
	if body.Recipient != nil {
		id, err = h.content.CreateDirect(user.Id, *body.Recipient, body.Body)
	} else {
		id, err = h.content.Create(domain.ContentCreationData{
			AuthorId: user.Id,
			Scope:    domain.Scope(body.Scope),
			ScopeId:  body.ScopeId,
			Kind:     domain.ContentKind(body.Kind),
			Body:     body.Body,
		})
	}
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.CreateContentResponse{Id: id})
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.content.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := authorizeScope(user.Id, item.Scope, item.ScopeId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, h.contentResponse(item, r.URL.Query().Get("render") == "html"))
}

func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	scope := domain.Scope(chi.URLParam(r, "scope"))
	scopeId := chi.URLParam(r, "scopeId")

	if scope == domain.ScopeDirect {
		// Direct channels are private to the pair
		user := requireUser(w, r)
		if user == nil {
			return
		}
		a, b, err := domain.ParseDMScopeId(scopeId)
		if err != nil {
			http.Error(w, "Invalid scope id", http.StatusBadRequest)
			return
		}
		if user.Id != a && user.Id != b {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	items, err := h.content.List(scope, scopeId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	render := r.URL.Query().Get("render") == "html"
	response := api.ContentListResponse{Items: make([]api.ContentResponse, len(items))}
	for i := range items {
		response.Items[i] = h.contentResponse(&items[i], render)
	}
	writeJSON(w, response)
}

func (h *Handler) EditContent(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.EditContentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.content.Edit(id, user.Id, body.Body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.content.Delete(id, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) PinContent(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.PinContentRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.content.SetPinned(id, user, body.Pinned); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) contentResponse(item *domain.ContentItem, render bool) api.ContentResponse {
	response := api.ContentResponse{ContentItem: *item}
	if render {
		html, err := h.markdown.Render(item.Body)
		if err != nil {
			// Raw body still ships; rendering is best-effort
			logger.Log.Warn("markdown render failed", "content_id", item.Id, "error", err)
			return response
		}
		response.BodyHTML = html
	}
	return response
}
