package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/technova/airdash-server/internal/dashboard"
	"github.com/technova/airdash-server/internal/prefs"
	"github.com/technova/airdash-server/internal/protocol"
	"github.com/technova/airdash-server/internal/queue"
	"github.com/technova/airdash-server/internal/risk"
	"github.com/technova/airdash-server/internal/store"

	"github.com/google/uuid"
)

// Handler serves the dashboard HTTP API.
type Handler struct {
	db            *store.DB
	prefs         *prefs.Store
	producer      *queue.Producer
	snapshotLimit int
	now           func() time.Time
}

// NewHandler creates an API handler. The producer may be nil when the
// ingest endpoint is not needed.
func NewHandler(db *store.DB, prefsStore *prefs.Store, producer *queue.Producer, snapshotLimit int) *Handler {
	return &Handler{
		db:            db,
		prefs:         prefsStore,
		producer:      producer,
		snapshotLimit: snapshotLimit,
		now:           time.Now,
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard handles GET /api/v1/dashboard. An explicit ?mode= overrides
// the stored preference for this request only.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mode, err := h.prefs.ViewMode(ctx)
	if err != nil {
		fmt.Printf("Failed to load view mode preference: %v\n", err)
		mode = dashboard.ModeRecent
	}

	if param := r.URL.Query().Get("mode"); param != "" {
		override, err := dashboard.ParseMode(param)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid mode: %s", param))
			return
		}
		mode = override
	}

	records, err := h.db.RecentReadings(h.snapshotLimit)
	if err != nil {
		fmt.Printf("Failed to load readings: %v\n", err)

		// Serve the last rendered view-model when the database is down
		if cached, cacheErr := h.prefs.CachedViewModel(ctx); cacheErr == nil && cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load readings")
		return
	}

	vm := dashboard.Aggregate(records, mode, h.now())

	if err := h.prefs.CacheViewModel(ctx, vm); err != nil {
		fmt.Printf("Failed to cache view model: %v\n", err)
	}

	writeJSON(w, http.StatusOK, vm)
}

// Risks handles GET /api/v1/risks
func (h *Handler) Risks(w http.ResponseWriter, r *http.Request) {
	doc, err := h.db.LatestPrediction()
	if err != nil {
		fmt.Printf("Failed to load prediction: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load prediction")
		return
	}

	items, message := risk.Feed(doc)

	response := map[string]interface{}{
		"risks": items,
	}
	if message != "" {
		response["message"] = message
	}
	if doc != nil {
		response["prediction_id"] = doc.ID
		response["created_at"] = doc.CreatedAt
	}

	writeJSON(w, http.StatusOK, response)
}

// GetViewMode handles GET /api/v1/viewmode
func (h *Handler) GetViewMode(w http.ResponseWriter, r *http.Request) {
	mode, err := h.prefs.ViewMode(r.Context())
	if err != nil {
		fmt.Printf("Failed to load view mode preference: %v\n", err)
		mode = dashboard.ModeRecent
	}

	writeJSON(w, http.StatusOK, map[string]string{"mode": string(mode)})
}

// SetViewMode handles PUT /api/v1/viewmode
func (h *Handler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := dashboard.ParseMode(body.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid mode: %s", body.Mode))
		return
	}

	if err := h.prefs.SetViewMode(r.Context(), mode); err != nil {
		fmt.Printf("Failed to store view mode preference: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to store preference")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mode": string(mode)})
}

// Ingest handles POST /api/v1/ingest. It accepts a raw reading over
// HTTP for devices that cannot hold a TCP connection open.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	if h.producer == nil {
		writeError(w, http.StatusServiceUnavailable, "ingest not available")
		return
	}

	var body struct {
		DeviceID string                 `json:"device_id"`
		Location string                 `json:"location"`
		Data     map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}
	if len(body.Data) == 0 {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	readingMsg := &protocol.ReadingMessage{
		ConnectionID: uuid.New().String(),
		DeviceID:     body.DeviceID,
		Location:     body.Location,
		ReceivedAt:   h.now(),
		Fields:       body.Data,
	}

	data, err := protocol.EncodeReadingMessage(readingMsg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode reading")
		return
	}

	if err := h.producer.Publish(r.Context(), body.DeviceID, data); err != nil {
		fmt.Printf("Failed to publish reading: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to publish reading")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("Failed to encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
