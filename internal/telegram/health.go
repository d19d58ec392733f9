package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers platform health probes in webhook deployments,
// checking each named dependency.
func HealthHandler(checks map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ok := true
		results := make(map[string]any, len(checks))
		for name, dep := range checks {
			if err := dep.Ping(ctx); err != nil {
				ok = false
				results[name] = map[string]any{"status": "error", "error": err.Error()}
			} else {
				results[name] = map[string]any{"status": "ok"}
			}
		}

		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": ok, "checks": results})
	})
}
