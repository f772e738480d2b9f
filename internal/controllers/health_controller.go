package controllers

import (
	"context"
	"fmt"
	"net/http"
	"resultsd/internal/providers"
	"time"

	"github.com/jonboulle/clockwork"
)

const healthPingTimeout = 2 * time.Second

type HealthController struct {
	store     providers.StorePingerInterface
	clock     clockwork.Clock
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Store         string  `json:"store"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health reports uptime and whether the document store answers a ping.
// An unreachable store turns the answer into a 503.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	uptime := hc.clock.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Store:         "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	}
	status := http.StatusOK
	if err := hc.store.Ping(ctx); err != nil {
		resp.Status, resp.Store = "degraded", "unavailable"
		status = http.StatusServiceUnavailable
	}

	providers.WriteJSON(w, status, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store providers.StorePingerInterface, clock clockwork.Clock) *HealthController {
	return &HealthController{
		store:     store,
		clock:     clock,
		startTime: clock.Now(),
	}
}
