package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/utils"
)

func (h *Handler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	sessionId := chi.URLParam(r, "sessionId")

	var body api.CreatePollRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	poll, err := h.polls.Create(user, domain.PollCreationData{
		SessionId:     sessionId,
		Question:      body.Question,
		Options:       body.Options,
		AllowMultiple: body.AllowMultiple,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, poll)
}

func (h *Handler) ListPolls(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	sessionId := chi.URLParam(r, "sessionId")

	polls, tallies, err := h.polls.ListForSession(sessionId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.PollListResponse{Polls: make([]api.PollResponse, len(polls))}
	for i := range polls {
		response.Polls[i] = api.PollResponse{Poll: polls[i], Tally: tallies[i]}
	}
	writeJSON(w, response)
}

func (h *Handler) GetPoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	poll, tally, err := h.polls.Get(chi.URLParam(r, "pollId"), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.PollResponse{Poll: *poll, Tally: tally})
}

func (h *Handler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	if err := h.polls.Close(chi.URLParam(r, "pollId"), user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var body api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.polls.Vote(chi.URLParam(r, "pollId"), user.Id, body.OptionId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
