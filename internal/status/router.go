package status

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GoldSync/internal/recorder"
	"GoldSync/internal/state"
)

// LivenessMessage is returned for every path other than the status routes.
const LivenessMessage = "Gold price sync service is running"

// Handler serves the last known sync state.
type Handler struct {
	tracker  *state.Tracker
	recorder recorder.Recorder
}

func NewHandler(tracker *state.Tracker, rec recorder.Recorder) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{tracker: tracker, recorder: rec}
}

// Health reports the last sync; lastUpdate and goldPrice are null until the first cycle completes.
func (h *Handler) Health(c *gin.Context) {
	st := h.tracker.GetState()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"lastUpdate": st.LastSyncAt,
		"syncCount":  st.SyncCount,
		"goldPrice":  st.LastQuote,
	})
}

// Cycles lists recent cycle summaries, newest first. ?limit=N caps the list.
func (h *Handler) Cycles(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	cycles := h.recorder.Recent(limit)
	if cycles == nil {
		cycles = []recorder.CycleSummary{}
	}
	c.JSON(http.StatusOK, cycles)
}

// Liveness answers any unknown path with a plain-text message.
func (h *Handler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

// NewRouter builds the status endpoint.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)
	router.GET("/cycles", h.Cycles)
	router.NoRoute(h.Liveness)

	return router
}
