package services

import "errors"

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrQuestionNotFound = errors.New("question not found")

	ErrNoTeams            = errors.New("a match needs at least one team")
	ErrTeamOwnership      = errors.New("some teams do not exist or don't belong to you")
	ErrNotEnoughQuestions = errors.New("not enough questions of this type")
	ErrMatchCompleted     = errors.New("cannot update scores for completed matches")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)
