package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"tarra_waitlist/internal/service"
	"tarra_waitlist/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const boardPushInterval = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type leaderboardRoutes struct {
	ls service.LeaderboardServiceI
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, ls service.LeaderboardServiceI) {
	r := &leaderboardRoutes{ls: ls}
	h := handler.Group("/leaderboard")
	{
		h.GET("/", r.GetLeaderboard)
		h.GET("/ws", r.handleWebSocket)
	}
}

type leaderboardEntry struct {
	Position      int    `json:"position"`
	FirstName     string `json:"first_name"`
	ReferralCount int    `json:"referral_count"`
	IsGhost       bool   `json:"is_ghost"`
}

func (r *leaderboardRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := r.ls.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{
			Position:      e.Position,
			FirstName:     e.FirstName,
			ReferralCount: e.ReferralCount,
			IsGhost:       e.IsGhost,
		}
	}

	c.JSON(http.StatusOK, out)
}

// handleWebSocket streams leaderboard snapshots on a fixed interval. Reads
// are eventually consistent with writes, so a snapshot a few seconds stale
// is the contract, not a bug.
func (r *leaderboardRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Info("websocket unexpected close", zap.Error(err))
				}
				return
			}
		}
	}()

	go r.pushLoop(conn, limit, done)
}

func (r *leaderboardRoutes) pushLoop(conn *websocket.Conn, limit int, done <-chan struct{}) {
	log := logger.Logger()
	defer conn.Close()

	ticker := time.NewTicker(boardPushInterval)
	defer ticker.Stop()

	for {
		if err := r.pushSnapshot(conn, limit); err != nil {
			log.Info("websocket push ended", zap.Error(err))
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func (r *leaderboardRoutes) pushSnapshot(conn *websocket.Conn, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), boardPushInterval)
	defer cancel()

	entries, err := r.ls.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}

	out := make([]leaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntry{
			Position:      e.Position,
			FirstName:     e.FirstName,
			ReferralCount: e.ReferralCount,
			IsGhost:       e.IsGhost,
		}
	}

	payload, err := json.Marshal(gin.H{"type": "leaderboard", "data": out})
	if err != nil {
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, payload)
}
