package handlers

import (
	"errors"
	"net/http"

	"github.com/M-Imran22/byte-battle-quize-app/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// serviceError maps service failures onto HTTP statuses: missing records are
// 404s, validation and state-machine rejections are 400s, anything else is a
// storage failure.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNoTeams),
		errors.Is(err, services.ErrTeamOwnership),
		errors.Is(err, services.ErrNotEnoughQuestions),
		errors.Is(err, services.ErrMatchCompleted),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
