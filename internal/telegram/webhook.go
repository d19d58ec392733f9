package telegram

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// WebhookHandler returns an http.Handler that accepts Bot API webhook
// deliveries. Each update is handled to completion before responding, so
// Telegram's retry behavior provides at-least-once processing.
func (h *Handler) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		var update Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("decode webhook update: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		h.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})
}

// Poll runs a long-polling loop against the Bot API until ctx is canceled.
func Poll(ctx context.Context, client *Client, handler *Handler) {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := client.GetUpdates(ctx, offset, 50)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("get updates: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}
		for _, update := range updates {
			offset = update.UpdateID + 1
			handler.HandleUpdate(ctx, update)
		}
	}
}
