package handlers

import (
	"net/http"
	"strconv"

	"github.com/M-Imran22/byte-battle-quize-app/internal/services"
	"github.com/M-Imran22/byte-battle-quize-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
	hub          *ws.Hub
}

func NewMatchHandler(matchService *services.MatchService, hub *ws.Hub) *MatchHandler {
	return &MatchHandler{matchService: matchService, hub: hub}
}

type CreateMatchRequest struct {
	MatchName     string `json:"match_name" binding:"required,min=1,max=100"`
	MatchType     string `json:"match_type" binding:"required"`
	TeamIDs       []uint `json:"team_ids" binding:"required"`
	QuestionCount int    `json:"question_count" binding:"required,min=1"`
}

type UpdateMatchRequest struct {
	MatchName string `json:"match_name"`
	MatchType string `json:"match_type"`
	TeamIDs   []uint `json:"team_ids"`
}

type UpdateScoreRequest struct {
	Rounds []services.ScoreUpdate `json:"rounds" binding:"required,dive"`
}

// CreateMatch godoc
// @Summary      Create a match
// @Description  Schedules a random set of questions and zero-score rounds for the given teams
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateMatchRequest true "Match data"
// @Success      201 {object} models.Match
// @Failure      400 {object} ErrorResponse
// @Router       /api/match [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	match, err := h.matchService.Create(userID, req.MatchName, req.MatchType, req.TeamIDs, req.QuestionCount)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Match added successfully.", "match": match})
}

// ListMatches godoc
// @Summary      List the user's matches with rounds and teams
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/match [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID := c.GetUint("user_id")

	matches, err := h.matchService.List(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(matches), "matches": matches})
}

// GetMatch godoc
// @Summary      Get one match with rounds and teams
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} models.Match
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.Get(id, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}

// UpdateMatch godoc
// @Summary      Rename a match or reassign its teams
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Param        request body UpdateMatchRequest true "Fields to update"
// @Success      200 {object} models.Match
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id} [put]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	match, err := h.matchService.Update(id, userID, req.MatchName, req.MatchType, req.TeamIDs)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match updated successfully.", "match": match})
}

// DeleteMatch godoc
// @Summary      Delete a match
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	if err := h.matchService.Delete(id, userID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Match deleted successfully."})
}

// StartMatch godoc
// @Summary      Start a match
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} models.Match
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id}/start [put]
func (h *MatchHandler) StartMatch(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	match, err := h.matchService.Start(id, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match started successfully.", "match": match})
}

// CurrentQuestion godoc
// @Summary      Get the question at the match cursor
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} services.CurrentQuestionResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id}/current-question [get]
func (h *MatchHandler) CurrentQuestion(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	result, err := h.matchService.CurrentQuestion(id, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	if result.IsComplete {
		c.JSON(http.StatusOK, gin.H{
			"message":    "No more questions",
			"question":   nil,
			"isComplete": true,
			"progress":   result.Progress,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// NextQuestion godoc
// @Summary      Advance the match to the next question
// @Description  Marks the current question consumed, moves the cursor and completes the match on the last slot
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} services.AdvanceResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id}/next-question [put]
func (h *MatchHandler) NextQuestion(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	result, err := h.matchService.Advance(id, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.hub.Broadcast(ws.Message{
		Event: ws.EventQuestionAdvanced,
		Data: gin.H{
			"matchId":    id,
			"isComplete": result.IsComplete,
			"progress":   result.Progress,
		},
	})

	message := "Moved to next question"
	if result.IsComplete {
		message = "Match completed"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"isComplete": result.IsComplete,
		"progress":   result.Progress,
	})
}

// UpdateScore godoc
// @Summary      Update the scores of a match's rounds
// @Description  Applies all score writes in one transaction; rejected if any referenced match is completed
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Param        request body UpdateScoreRequest true "Score entries"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/match/{id}/update_score [put]
func (h *MatchHandler) UpdateScore(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Rounds) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "rounds must not be empty"})
		return
	}

	if err := h.matchService.UpdateScores(req.Rounds); err != nil {
		serviceError(c, err)
		return
	}

	h.hub.Broadcast(ws.Message{
		Event: ws.EventScoresUpdated,
		Data:  gin.H{"matchId": id, "scores": req.Rounds},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "Scores updated successfully."})
}

// Winner godoc
// @Summary      Get final standings and the winner (or tied winners)
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Match ID"
// @Success      200 {object} services.WinnerResult
// @Failure      404 {object} ErrorResponse
// @Router       /api/match/{id}/winner [get]
func (h *MatchHandler) Winner(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, ok := matchID(c)
	if !ok {
		return
	}

	result, err := h.matchService.Winner(id, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PublicTeams godoc
// @Summary      List a match's teams for buzzer devices
// @Tags         public
// @Produce      json
// @Param        matchId path int true "Match ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/public/teams/{matchId} [get]
func (h *MatchHandler) PublicTeams(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("matchId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	teams, err := h.matchService.TeamsForMatch(uint(id))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func matchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return 0, false
	}
	return uint(id), true
}
