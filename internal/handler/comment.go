package handler

import (
	"net/http"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	contentId, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.comments.Create(domain.CommentCreationData{
		ContentItemId:   contentId,
		AuthorId:        user.Id,
		ParentCommentId: body.ParentCommentId,
		Body:            body.Body,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.CreateCommentResponse{Id: id})
}

// GetThread returns the composed live view: the item, its comment forest and
// the reaction aggregates, in one response.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	contentId, err := urlId(r, "contentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.comments.Thread(contentId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := authorizeScope(user.Id, response.Content.Scope, response.Content.ScopeId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if r.URL.Query().Get("render") == "html" {
		response.Content = h.contentResponse(&response.Content.ContentItem, true)
	}
	writeJSON(w, response)
}

func (h *Handler) EditComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "commentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.EditCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.comments.Edit(id, user.Id, body.Body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	id, err := urlId(r, "commentId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.comments.Delete(id, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
