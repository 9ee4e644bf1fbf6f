package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

var (
	sseClients = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "condominio_realtime_clients",
		Help: "Assinantes SSE conectados por coleção.",
	}, []string{"collection"})

	sseSnapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "condominio_realtime_snapshots_total",
		Help: "Snapshots entregues via SSE por coleção.",
	}, []string{"collection"})
)

// RealtimeStream entrega snapshots da coleção via Server-Sent Events.
// O primeiro evento chega imediatamente com o estado atual; os seguintes
// a cada mudança, sempre o snapshot completo mais recente.
func (h *Handler) RealtimeStream(w http.ResponseWriter, r *http.Request) {
	coll := realtime.Collection(chi.URLParam(r, "collection"))

	sub, err := h.hub.Subscribe(coll)
	if err != nil {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "coleção desconhecida", nil)
		return
	}
	defer sub.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "streaming não suportado", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	label := string(coll)
	sseClients.WithLabelValues(label).Inc()
	defer sseClients.WithLabelValues(label).Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-sub.C:
			if !open {
				return
			}

			values := make([]any, 0, len(snap.Entries))
			for _, entry := range snap.Entries {
				values = append(values, entry.Value)
			}
			payload, err := json.Marshal(map[string]any{
				"collection": snap.Collection,
				"version":    snap.Version,
				"items":      values,
			})
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			sseSnapshots.WithLabelValues(label).Inc()
		}
	}
}
