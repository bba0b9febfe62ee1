package services

import (
	"math/rand"

	"github.com/M-Imran22/byte-battle-quize-app/internal/models"

	"gorm.io/gorm"
)

// MatchService owns the match state machine: pending -> active -> completed,
// the current-question cursor and the per-team scores. All multi-row writes
// go through one transaction so a failure leaves nothing half-applied.
type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type CurrentQuestionResult struct {
	Question   *models.Question `json:"question"`
	IsComplete bool             `json:"isComplete"`
	Progress   Progress         `json:"progress"`
}

type AdvanceResult struct {
	IsComplete bool     `json:"isComplete"`
	Progress   Progress `json:"progress"`
}

type ScoreUpdate struct {
	TeamID  uint `json:"team_id" binding:"required"`
	MatchID uint `json:"match_id" binding:"required"`
	Score   *int `json:"score" binding:"required"`
}

type FinalScore struct {
	Team  string `json:"team"`
	Score int    `json:"score"`
}

type WinnerResult struct {
	Match       *models.Match      `json:"match"`
	Winner      *models.TeamMatch  `json:"winner"`
	Winners     []models.TeamMatch `json:"winners"`
	IsTie       bool               `json:"isTie"`
	FinalScores []FinalScore       `json:"finalScores"`
}

// Create validates teams and question availability, then creates the match,
// its schedule and one zero-score round per team in a single transaction.
// Questions are sampled uniformly without replacement from the user's bank,
// filtered by type unless the type is "All Types".
func (s *MatchService) Create(userID uint, name, matchType string, teamIDs []uint, questionCount int) (*models.Match, error) {
	if len(teamIDs) == 0 {
		return nil, ErrNoTeams
	}

	var teamCount int64
	if err := s.db.Model(&models.Team{}).
		Where("id IN ? AND user_id = ?", teamIDs, userID).
		Count(&teamCount).Error; err != nil {
		return nil, err
	}
	if int(teamCount) != len(teamIDs) {
		return nil, ErrTeamOwnership
	}

	query := s.db.Where("user_id = ?", userID)
	if matchType != "" && matchType != models.MatchTypeAll {
		query = query.Where("q_type = ?", matchType)
	}

	var eligible []models.Question
	if err := query.Find(&eligible).Error; err != nil {
		return nil, err
	}
	if len(eligible) < questionCount {
		return nil, ErrNotEnoughQuestions
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	selected := eligible[:questionCount]

	match := models.Match{
		MatchName:     name,
		MatchType:     matchType,
		QuestionCount: questionCount,
		Status:        models.MatchStatusPending,
		UserID:        userID,
	}

	tx := s.db.Begin()
	if err := tx.Create(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	schedule := make([]models.MatchQuestion, len(selected))
	for i, q := range selected {
		schedule[i] = models.MatchQuestion{
			MatchID:       match.ID,
			QuestionID:    q.ID,
			QuestionOrder: i + 1,
		}
	}
	if err := tx.Create(&schedule).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	rounds := make([]models.TeamMatch, len(teamIDs))
	for i, teamID := range teamIDs {
		rounds[i] = models.TeamMatch{TeamID: teamID, MatchID: match.ID, Score: 0}
	}
	if err := tx.Create(&rounds).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchService) List(userID uint) ([]models.Match, error) {
	var matches []models.Match
	err := s.db.Where("user_id = ?", userID).
		Preload("Rounds").
		Preload("Rounds.Team").
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MatchService) Get(id, userID uint) (*models.Match, error) {
	var match models.Match
	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Rounds").
		Preload("Rounds.Team").
		First(&match).Error
	if err != nil {
		return nil, ErrMatchNotFound
	}
	return &match, nil
}

// Update renames a match or swaps its team list. Reassigning teams resets
// every round to score zero, matching the original scoreboard behavior.
func (s *MatchService) Update(id, userID uint, name, matchType string, teamIDs []uint) (*models.Match, error) {
	match, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		match.MatchName = name
	}
	if matchType != "" {
		match.MatchType = matchType
	}

	tx := s.db.Begin()
	if err := tx.Save(match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(teamIDs) > 0 {
		var teamCount int64
		if err := tx.Model(&models.Team{}).
			Where("id IN ? AND user_id = ?", teamIDs, userID).
			Count(&teamCount).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if int(teamCount) != len(teamIDs) {
			tx.Rollback()
			return nil, ErrTeamOwnership
		}

		if err := tx.Where("match_id = ?", match.ID).Delete(&models.TeamMatch{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		rounds := make([]models.TeamMatch, len(teamIDs))
		for i, teamID := range teamIDs {
			rounds[i] = models.TeamMatch{TeamID: teamID, MatchID: match.ID, Score: 0}
		}
		if err := tx.Create(&rounds).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.Get(id, userID)
}

func (s *MatchService) Delete(id, userID uint) error {
	match, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	if err := tx.Where("match_id = ?", match.ID).Delete(&models.TeamMatch{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("match_id = ?", match.ID).Delete(&models.MatchQuestion{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Match{}, match.ID).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// Start moves a match to active. Re-invoking on an already active match just
// re-applies the status; a completed match stays completed.
func (s *MatchService) Start(id, userID uint) (*models.Match, error) {
	match, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchCompleted
	}

	match.Status = models.MatchStatusActive
	if err := s.db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("status", models.MatchStatusActive).Error; err != nil {
		return nil, err
	}
	return match, nil
}

// CurrentQuestion returns the scheduled question at the cursor, or the
// complete sentinel once every slot has been consumed.
func (s *MatchService) CurrentQuestion(id, userID uint) (*CurrentQuestionResult, error) {
	match, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	var entry models.MatchQuestion
	err = s.db.Where("match_id = ? AND question_order = ? AND consumed = ?",
		match.ID, match.CurrentQuestionIndex+1, false).
		Preload("Question").
		First(&entry).Error
	if err != nil {
		return &CurrentQuestionResult{
			Question:   nil,
			IsComplete: true,
			Progress:   Progress{Current: match.CurrentQuestionIndex, Total: match.QuestionCount},
		}, nil
	}

	return &CurrentQuestionResult{
		Question:   &entry.Question,
		IsComplete: false,
		Progress:   Progress{Current: match.CurrentQuestionIndex + 1, Total: match.QuestionCount},
	}, nil
}

// Advance marks the current scheduled question consumed and moves the cursor
// forward. When the cursor reaches the question count the match completes.
// The write is committed before the result is returned, since the next
// current-question lookup reads it straight back.
func (s *MatchService) Advance(id, userID uint) (*AdvanceResult, error) {
	match, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return &AdvanceResult{
			IsComplete: true,
			Progress:   Progress{Current: match.CurrentQuestionIndex, Total: match.QuestionCount},
		}, nil
	}

	tx := s.db.Begin()

	var entry models.MatchQuestion
	if err := tx.Where("match_id = ? AND question_order = ? AND consumed = ?",
		match.ID, match.CurrentQuestionIndex+1, false).
		First(&entry).Error; err == nil {
		if err := tx.Model(&entry).Update("consumed", true).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	newIndex := match.CurrentQuestionIndex + 1
	updates := map[string]interface{}{"current_question_index": newIndex}
	isComplete := newIndex >= match.QuestionCount
	if isComplete {
		updates["status"] = models.MatchStatusCompleted
	}
	if err := tx.Model(&models.Match{}).Where("id = ?", match.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &AdvanceResult{
		IsComplete: isComplete,
		Progress:   Progress{Current: newIndex, Total: match.QuestionCount},
	}, nil
}

// UpdateScores applies a batch of score writes as one all-or-nothing
// transaction. If any referenced match is already completed the whole batch
// is rejected and no score changes.
func (s *MatchService) UpdateScores(rounds []ScoreUpdate) error {
	matchIDs := make([]uint, 0, len(rounds))
	seen := make(map[uint]bool)
	for _, r := range rounds {
		if !seen[r.MatchID] {
			seen[r.MatchID] = true
			matchIDs = append(matchIDs, r.MatchID)
		}
	}

	var completed int64
	if err := s.db.Model(&models.Match{}).
		Where("id IN ? AND status = ?", matchIDs, models.MatchStatusCompleted).
		Count(&completed).Error; err != nil {
		return err
	}
	if completed > 0 {
		return ErrMatchCompleted
	}

	tx := s.db.Begin()
	for _, r := range rounds {
		err := tx.Model(&models.TeamMatch{}).
			Where("team_id = ? AND match_id = ?", r.TeamID, r.MatchID).
			Update("score", *r.Score).Error
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// Winner computes the final standings. A unique maximum score yields a sole
// winner; several rounds tied at the maximum yield the full tied set.
func (s *MatchService) Winner(id, userID uint) (*WinnerResult, error) {
	match, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	result := &WinnerResult{Match: match, FinalScores: []FinalScore{}}
	if len(match.Rounds) == 0 {
		return result, nil
	}

	maxScore := match.Rounds[0].Score
	for _, r := range match.Rounds {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	var winners []models.TeamMatch
	for _, r := range match.Rounds {
		if r.Score == maxScore {
			winners = append(winners, r)
		}
		result.FinalScores = append(result.FinalScores, FinalScore{
			Team:  r.Team.TeamName,
			Score: r.Score,
		})
	}

	if len(winners) == 1 {
		result.Winner = &winners[0]
	} else {
		result.Winners = winners
		result.IsTie = true
	}
	return result, nil
}

// TeamsForMatch lists the participating teams, used by the public endpoint
// buzzer devices load their team picker from.
func (s *MatchService) TeamsForMatch(matchID uint) ([]models.Team, error) {
	var match models.Match
	err := s.db.Preload("Rounds").Preload("Rounds.Team").First(&match, matchID).Error
	if err != nil {
		return nil, ErrMatchNotFound
	}

	teams := make([]models.Team, 0, len(match.Rounds))
	for _, r := range match.Rounds {
		teams = append(teams, r.Team)
	}
	return teams, nil
}
