package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/logger"
)

const heartbeatInterval = 25 * time.Second

// Stream bridges one live subscription onto an SSE response. The client names
// the resource key it wants (?key=thread:42); subscribing again on the same
// key from another tab replaces this subscription, and the hub closing the
// channel tells the client to reconnect and reload.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	key := domain.ResourceKey(r.URL.Query().Get("key"))
	if err := authorizeKey(user.Id, key); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := h.hub.Subscribe(user.Id, key)
	defer sub.Close()

	// Initial comment confirms the stream is open before any event arrives
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-sub.Events():
			if !ok {
				// Dropped by the hub (slow consumer or replaced): the client
				// reconnects and reloads
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logger.Log.Error("failed to marshal event", "key", string(key), "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// authorizeKey rejects keys the viewer may not listen on: someone else's
// notification feed or a direct-message pair they are not part of.
func authorizeKey(viewer domain.UserId, key domain.ResourceKey) error {
	s := string(key)
	switch {
	case s == "":
		return fmt.Errorf("missing key")
	case strings.HasPrefix(s, "notif:"):
		if s != string(domain.NotificationsKey(viewer)) {
			return fmt.Errorf("not your notification feed")
		}
	case strings.HasPrefix(s, "dm:"):
		a, b, err := domain.ParseDMScopeId(strings.TrimPrefix(s, "dm:"))
		if err != nil {
			return fmt.Errorf("malformed key")
		}
		if viewer != a && viewer != b {
			return fmt.Errorf("not your conversation")
		}
	case strings.HasPrefix(s, "thread:"), strings.HasPrefix(s, "group:"), strings.HasPrefix(s, "session:"):
		// Readable by any authenticated member
	default:
		return fmt.Errorf("unknown key")
	}
	return nil
}
