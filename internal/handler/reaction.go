package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/utils"
)

func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var body api.ToggleReactionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	targetKind := domain.TargetKind(body.TargetKind)
	active, err := h.reactions.Toggle(user.Id, body.TargetId, targetKind, domain.ReactionKind(body.Kind))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	counts, err := h.reactions.Counts(body.TargetId, targetKind, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ToggleReactionResponse{Active: active, Counts: counts})
}

func (h *Handler) GetReactionCounts(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	targetId, err := urlId(r, "targetId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	counts, err := h.reactions.Counts(targetId, domain.TargetKind(chi.URLParam(r, "targetKind")), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, counts)
}
