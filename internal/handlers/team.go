package handlers

import (
	"net/http"
	"strconv"

	"github.com/M-Imran22/byte-battle-quize-app/internal/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

type TeamRequest struct {
	TeamName    string `json:"team_name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,max=255"`
}

type TeamUpdateRequest struct {
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
}

// CreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TeamRequest true "Team data"
// @Success      201 {object} models.Team
// @Failure      400 {object} ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.Create(userID, req.TeamName, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Team added successfully.", "team": team})
}

// ListTeams godoc
// @Summary      List the user's teams
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/team [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID := c.GetUint("user_id")

	teams, err := h.teamService.List(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(teams), "teams": teams})
}

// GetTeam godoc
// @Summary      Get one team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200 {object} models.Team
// @Failure      404 {object} ErrorResponse
// @Router       /api/team/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	team, err := h.teamService.Get(uint(id), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

// UpdateTeam godoc
// @Summary      Update a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Param        request body TeamUpdateRequest true "Fields to update"
// @Success      200 {object} models.Team
// @Failure      404 {object} ErrorResponse
// @Router       /api/team/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	var req TeamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	team, err := h.teamService.Update(uint(id), userID, req.TeamName, req.Description)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team updated successfully.", "team": team})
}

// DeleteTeam godoc
// @Summary      Delete a team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	if err := h.teamService.Delete(uint(id), userID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Team deleted successfully."})
}
