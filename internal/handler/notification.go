package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studycircle-dev/studycircle/internal/api"
	"github.com/studycircle-dev/studycircle/internal/utils"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	limit := h.cfg.Public.NotificationPage
	if limitQuery := r.URL.Query().Get("limit"); limitQuery != "" {
		parsed, err := parseIntParam(limitQuery, "limit")
		if err != nil || parsed <= 0 || parsed > int64(limit) {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = int(parsed)
	}

	notifications, unread, err := h.notifications.List(user.Id, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.NotificationListResponse{Notifications: notifications, UnreadCount: unread})
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	unread, err := h.notifications.UnreadCount(user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.UnreadCountResponse{UnreadCount: unread})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	if err := h.notifications.MarkRead(user.Id, chi.URLParam(r, "notificationId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	if err := h.notifications.MarkAllRead(user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	if err := h.notifications.Delete(user.Id, chi.URLParam(r, "notificationId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
