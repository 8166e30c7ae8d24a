// Package api serves the JSON and websocket endpoints backing the
// status page.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/notifytray/notifytray/internal/assets"
	"github.com/notifytray/notifytray/internal/buildinfo"
	"github.com/notifytray/notifytray/internal/logging"
)

// IconsHandler lists the embedded icon names.
func IconsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"icons":   assets.Names(),
			"version": buildinfo.Short(),
		})
	}
}

// LogsHandler returns recent log entries, newest first. ?limit=N caps
// the result (default 50).
func LogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		writeJSON(w, logging.Get().GetEntries(limit, nil, nil))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debugf(logging.CatHTTP, "encode response: %v", err)
	}
}
