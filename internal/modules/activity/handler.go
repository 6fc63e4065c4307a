package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"crmcore/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	logger *Logger
	hub    *Hub
}

func NewHandler(logger *Logger, hub *Hub) *Handler {
	return &Handler{logger: logger, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.ListActivity)
	rg.GET("/activity/ws", h.Subscribe)
}

// ListActivity returns the audit feed, newest first, optionally scoped to one
// entity via ?entityId=.
func (h *Handler) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := h.logger.repo.List(c.Request.Context(), c.Query("entityId"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity feed")
		return
	}
	response.Success(c, http.StatusOK, logs)
}

// Subscribe upgrades to a websocket and streams new entries until the client
// disconnects.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.Register(conn)

	// The reader loop exists only to notice disconnects.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
