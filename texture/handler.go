package texture

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"arenagame/logger"
)

// Stats counts what the service has done since start
type Stats struct {
	Generated int `json:"generated"`
	Cached    int `json:"cached"`
	Errors    int `json:"errors"`
}

// Handler serves a Generator over HTTP and caches encoded responses by
// request
type Handler struct {
	gen   Generator
	mu    sync.Mutex
	cache map[string]*wireResult
	stats Stats
}

func NewHandler(gen Generator) *Handler {
	return &Handler{gen: gen, cache: make(map[string]*wireResult)}
}

// Router mounts /api/generate, /api/stats and /health
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/generate", h.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/stats", h.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	return r
}

func (h *Handler) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

func cacheKey(req Request) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	log := logger.Log.WithFields(logrus.Fields{"texture": req.TextureType, "theme": req.Theme})

	key := cacheKey(req)
	h.mu.Lock()
	cached, ok := h.cache[key]
	if ok {
		h.stats.Cached++
	}
	h.mu.Unlock()
	if ok {
		log.Debug("cache hit")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	res, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("generation failed")
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	wire, err := encodeResult(res)
	if err != nil {
		log.WithError(err).Error("encoding failed")
		h.fail(w, http.StatusInternalServerError, err)
		return
	}

	h.mu.Lock()
	h.cache[key] = wire
	h.stats.Generated++
	h.mu.Unlock()
	log.Info("generated texture")
	writeJSON(w, http.StatusOK, wire)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Stats())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	h.mu.Lock()
	h.stats.Errors++
	h.mu.Unlock()
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("write json response")
	}
}
