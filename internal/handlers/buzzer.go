package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/M-Imran22/byte-battle-quize-app/internal/buzzer"
	"github.com/M-Imran22/byte-battle-quize-app/internal/models"
	"github.com/M-Imran22/byte-battle-quize-app/internal/services"
	"github.com/M-Imran22/byte-battle-quize-app/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BuzzerHandler is the entry point for the realtime channel. It validates
// inbound events, routes them to the arbiter, and tells the hub what to
// broadcast. Buzz presses are open to anonymous sessions; reset and score
// relay require a verified identity.
type BuzzerHandler struct {
	registry    *ws.Registry
	hub         *ws.Hub
	arbiter     *buzzer.Arbiter
	authService *services.AuthService
	db          *gorm.DB
}

func NewBuzzerHandler(registry *ws.Registry, hub *ws.Hub, arbiter *buzzer.Arbiter, authService *services.AuthService, db *gorm.DB) *BuzzerHandler {
	return &BuzzerHandler{
		registry:    registry,
		hub:         hub,
		arbiter:     arbiter,
		authService: authService,
		db:          db,
	}
}

// inboundEvent is the envelope every client frame must use. Data stays raw
// until the event name picks the payload variant.
type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type buzzerPressPayload struct {
	TeamName  string `json:"teamName"`
	Timestamp string `json:"timestamp"`
	MatchID   uint   `json:"matchId"`
}

type resetBuzzersPayload struct {
	MatchID uint `json:"matchId"`
}

type scoresUpdatedPayload struct {
	MatchID uint            `json:"matchId"`
	Scores  json.RawMessage `json:"scores"`
}

// HandleWebSocket godoc
// @Summary      Realtime buzzer channel
// @Description  Upgrades to a websocket. An optional token query parameter authenticates the session; verification failure leaves it anonymous.
// @Tags         websocket
// @Param        token query string false "JWT access token"
// @Router       /ws/buzzer [get]
func (h *BuzzerHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	session := h.registry.Register(conn)
	defer h.registry.Unregister(session.ID)

	// Invalid tokens are tolerated: buzzer devices connect without one.
	if token := c.Query("token"); token != "" {
		if userID, err := h.authService.ValidateToken(token); err == nil {
			h.registry.AttachIdentity(session.ID, userID, c.Query("username"))
		}
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var evt inboundEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "malformed message"})
			continue
		}

		h.dispatch(session, evt)
	}
}

func (h *BuzzerHandler) dispatch(session *ws.Session, evt inboundEvent) {
	switch evt.Event {
	case "buzzer-press":
		h.handlePress(session, evt.Data)
	case "reset-buzzers":
		h.handleReset(session, evt.Data)
	case "scores-updated":
		h.handleScoresRelay(session, evt.Data)
	default:
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "unknown event"})
	}
}

func (h *BuzzerHandler) handlePress(session *ws.Session, data json.RawMessage) {
	var payload buzzerPressPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "invalid buzzer data"})
		return
	}

	press, err := h.arbiter.Submit(session, payload.MatchID, payload.TeamName, payload.Timestamp)
	if err != nil {
		// Rejections go back to the presser only, never broadcast.
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: err.Error()})
		return
	}

	h.hub.Broadcast(ws.Message{Event: ws.EventBuzzerPressed, Data: press})
}

func (h *BuzzerHandler) handleReset(session *ws.Session, data json.RawMessage) {
	identity := session.Identity()
	if identity == nil {
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "unauthorized"})
		return
	}

	var payload resetBuzzersPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "invalid reset data"})
			return
		}
	}

	h.arbiter.Reset(payload.MatchID)
	log.Printf("buzzer: buzzers reset by %s", identity.Username)
	h.hub.Broadcast(ws.Message{Event: ws.EventBuzzersReset, Data: gin.H{"matchId": payload.MatchID}})
}

// handleScoresRelay forwards a host's live score edit to every display. The
// durable write goes through the REST endpoint; this event is notification
// only.
func (h *BuzzerHandler) handleScoresRelay(session *ws.Session, data json.RawMessage) {
	if session.Identity() == nil {
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "unauthorized"})
		return
	}

	var payload scoresUpdatedPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.MatchID == 0 || len(payload.Scores) == 0 {
		h.hub.SendTo(session.ID, ws.Message{Event: ws.EventError, Data: "invalid score data"})
		return
	}

	h.hub.Broadcast(ws.Message{
		Event: ws.EventScoresUpdated,
		Data:  gin.H{"matchId": payload.MatchID, "scores": payload.Scores},
	})
}

// CurrentRound godoc
// @Summary      Snapshot of the current round's presses
// @Tags         buzzer
// @Produce      json
// @Security     BearerAuth
// @Param        match_id query int false "Match ID (omit for the shared round)"
// @Success      200 {object} map[string]interface{}
// @Router       /api/buzzer [get]
func (h *BuzzerHandler) CurrentRound(c *gin.Context) {
	matchID, err := queryUint(c, "match_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match_id"})
		return
	}

	presses := h.arbiter.Round(matchID)
	c.JSON(http.StatusOK, gin.H{"count": len(presses), "presses": presses})
}

// ResetBuzzers godoc
// @Summary      Clear the current round
// @Tags         buzzer
// @Produce      json
// @Security     BearerAuth
// @Param        match_id query int false "Match ID (omit for the shared round)"
// @Success      200 {object} MessageResponse
// @Router       /api/buzzer/reset [post]
func (h *BuzzerHandler) ResetBuzzers(c *gin.Context) {
	matchID, err := queryUint(c, "match_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match_id"})
		return
	}

	h.arbiter.Reset(matchID)
	h.hub.Broadcast(ws.Message{Event: ws.EventBuzzersReset, Data: gin.H{"matchId": matchID}})

	c.JSON(http.StatusOK, MessageResponse{Message: "Buzzers reset successfully."})
}

// PressHistory godoc
// @Summary      List audited buzzer presses
// @Tags         buzzer
// @Produce      json
// @Security     BearerAuth
// @Param        match_id query int false "Filter by match"
// @Success      200 {object} map[string]interface{}
// @Router       /api/buzzer/history [get]
func (h *BuzzerHandler) PressHistory(c *gin.Context) {
	matchID, err := queryUint(c, "match_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match_id"})
		return
	}

	query := h.db.Order("sequence ASC")
	if matchID != 0 {
		query = query.Where("match_id = ?", matchID)
	}

	var presses []models.BuzzerPress
	if err := query.Find(&presses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch press history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(presses), "presses": presses})
}

func queryUint(c *gin.Context, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(val), nil
}
