package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/M-Imran22/byte-battle-quize-app/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Question{},
		&models.Match{},
		&models.MatchQuestion{},
		&models.TeamMatch{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db      *gorm.DB
	service *MatchService
	userID  uint
	teamIDs []uint
}

// newFixture seeds a user with three teams and questionCount questions of
// type "General".
func newFixture(t *testing.T, questionCount int) *fixture {
	t.Helper()

	db := openTestDB(t)

	user := models.User{Username: "host", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	var teamIDs []uint
	for _, name := range []string{"Red", "Blue", "Green"} {
		team := models.Team{TeamName: name, Description: name + " team", UserID: user.ID}
		if err := db.Create(&team).Error; err != nil {
			t.Fatalf("create team: %v", err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	for i := 0; i < questionCount; i++ {
		q := models.Question{
			QType:         "General",
			Question:      fmt.Sprintf("Question %d?", i+1),
			OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
			CorrectOption: "a",
			UserID:        user.ID,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	return &fixture{
		db:      db,
		service: NewMatchService(db),
		userID:  user.ID,
		teamIDs: teamIDs,
	}
}

func (f *fixture) setScores(t *testing.T, matchID uint, scores []int) {
	t.Helper()

	updates := make([]ScoreUpdate, len(scores))
	for i := range scores {
		score := scores[i]
		updates[i] = ScoreUpdate{TeamID: f.teamIDs[i], MatchID: matchID, Score: &score}
	}
	if err := f.service.UpdateScores(updates); err != nil {
		t.Fatalf("update scores: %v", err)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	f := newFixture(t, 5)

	if _, err := f.service.Create(f.userID, "m", "General", nil, 3); !errors.Is(err, ErrNoTeams) {
		t.Errorf("empty teams: err = %v, want ErrNoTeams", err)
	}

	if _, err := f.service.Create(f.userID, "m", "General", []uint{999}, 3); !errors.Is(err, ErrTeamOwnership) {
		t.Errorf("unknown team: err = %v, want ErrTeamOwnership", err)
	}

	otherUser := models.User{Username: "other", PasswordHash: "x"}
	f.db.Create(&otherUser)
	foreign := models.Team{TeamName: "Foreign", Description: "d", UserID: otherUser.ID}
	f.db.Create(&foreign)
	if _, err := f.service.Create(f.userID, "m", "General", []uint{foreign.ID}, 3); !errors.Is(err, ErrTeamOwnership) {
		t.Errorf("foreign team: err = %v, want ErrTeamOwnership", err)
	}

	if _, err := f.service.Create(f.userID, "m", "General", f.teamIDs, 6); !errors.Is(err, ErrNotEnoughQuestions) {
		t.Errorf("too many questions requested: err = %v, want ErrNotEnoughQuestions", err)
	}

	if _, err := f.service.Create(f.userID, "m", "History", f.teamIDs, 1); !errors.Is(err, ErrNotEnoughQuestions) {
		t.Errorf("no questions of type: err = %v, want ErrNotEnoughQuestions", err)
	}
}

func TestCreateMatchSchedulesQuestionsAndRounds(t *testing.T) {
	f := newFixture(t, 10)

	match, err := f.service.Create(f.userID, "Friday Night", "General", f.teamIDs, 4)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if match.Status != models.MatchStatusPending {
		t.Errorf("status = %s, want pending", match.Status)
	}
	if match.CurrentQuestionIndex != 0 {
		t.Errorf("index = %d, want 0", match.CurrentQuestionIndex)
	}

	var schedule []models.MatchQuestion
	f.db.Where("match_id = ?", match.ID).Order("question_order ASC").Find(&schedule)
	if len(schedule) != 4 {
		t.Fatalf("schedule has %d entries, want 4", len(schedule))
	}
	seenQuestions := make(map[uint]bool)
	for i, entry := range schedule {
		if entry.QuestionOrder != i+1 {
			t.Errorf("schedule[%d] order = %d, want %d", i, entry.QuestionOrder, i+1)
		}
		if entry.Consumed {
			t.Errorf("schedule[%d] consumed at creation", i)
		}
		if seenQuestions[entry.QuestionID] {
			t.Errorf("question %d scheduled twice", entry.QuestionID)
		}
		seenQuestions[entry.QuestionID] = true
	}

	var rounds []models.TeamMatch
	f.db.Where("match_id = ?", match.ID).Find(&rounds)
	if len(rounds) != len(f.teamIDs) {
		t.Fatalf("%d rounds, want %d", len(rounds), len(f.teamIDs))
	}
	for _, r := range rounds {
		if r.Score != 0 {
			t.Errorf("round for team %d starts at score %d, want 0", r.TeamID, r.Score)
		}
	}
}

func TestMatchLifecycle(t *testing.T) {
	f := newFixture(t, 5)

	match, err := f.service.Create(f.userID, "m", models.MatchTypeAll, f.teamIDs[:2], 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	started, err := f.service.Start(match.ID, f.userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != models.MatchStatusActive {
		t.Fatalf("status after start = %s, want active", started.Status)
	}

	for i := 1; i <= 3; i++ {
		current, err := f.service.CurrentQuestion(match.ID, f.userID)
		if err != nil {
			t.Fatalf("current question %d: %v", i, err)
		}
		if current.IsComplete {
			t.Fatalf("question %d reported complete early", i)
		}
		if current.Question == nil {
			t.Fatalf("question %d is nil", i)
		}
		if current.Progress.Current != i || current.Progress.Total != 3 {
			t.Errorf("question %d progress = %+v, want {%d 3}", i, current.Progress, i)
		}

		result, err := f.service.Advance(match.ID, f.userID)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		wantComplete := i == 3
		if result.IsComplete != wantComplete {
			t.Errorf("advance %d isComplete = %v, want %v", i, result.IsComplete, wantComplete)
		}
	}

	current, err := f.service.CurrentQuestion(match.ID, f.userID)
	if err != nil {
		t.Fatalf("current question after completion: %v", err)
	}
	if !current.IsComplete || current.Question != nil {
		t.Errorf("expected complete sentinel, got %+v", current)
	}

	final, err := f.service.Get(match.ID, f.userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if final.Status != models.MatchStatusCompleted {
		t.Errorf("final status = %s, want completed", final.Status)
	}

	// Questions survive consumption; only the schedule entries are flagged.
	var questionCount int64
	f.db.Model(&models.Question{}).Where("user_id = ?", f.userID).Count(&questionCount)
	if questionCount != 5 {
		t.Errorf("question bank has %d rows after match, want 5", questionCount)
	}
}

func TestUpdateScoresRejectedAfterCompletion(t *testing.T) {
	f := newFixture(t, 3)

	match, err := f.service.Create(f.userID, "m", "General", f.teamIDs, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Start(match.ID, f.userID); err != nil {
		t.Fatalf("start: %v", err)
	}

	f.setScores(t, match.ID, []int{5, 3, 1})

	if _, err := f.service.Advance(match.ID, f.userID); err != nil {
		t.Fatalf("advance: %v", err)
	}

	ten := 10
	err = f.service.UpdateScores([]ScoreUpdate{
		{TeamID: f.teamIDs[0], MatchID: match.ID, Score: &ten},
	})
	if !errors.Is(err, ErrMatchCompleted) {
		t.Fatalf("update after completion: err = %v, want ErrMatchCompleted", err)
	}

	var round models.TeamMatch
	f.db.Where("team_id = ? AND match_id = ?", f.teamIDs[0], match.ID).First(&round)
	if round.Score != 5 {
		t.Errorf("score changed to %d after rejected update, want 5", round.Score)
	}
}

func TestWinnerTieDetection(t *testing.T) {
	f := newFixture(t, 3)

	match, err := f.service.Create(f.userID, "m", "General", f.teamIDs, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.setScores(t, match.ID, []int{10, 10, 7})

	result, err := f.service.Winner(match.ID, f.userID)
	if err != nil {
		t.Fatalf("winner: %v", err)
	}
	if !result.IsTie {
		t.Error("expected a tie")
	}
	if result.Winner != nil {
		t.Errorf("winner = %+v, want nil on tie", result.Winner)
	}
	if len(result.Winners) != 2 {
		t.Fatalf("%d winners, want 2", len(result.Winners))
	}
	for _, w := range result.Winners {
		if w.Score != 10 {
			t.Errorf("tied winner score = %d, want 10", w.Score)
		}
	}
	if len(result.FinalScores) != 3 {
		t.Errorf("%d final scores, want 3", len(result.FinalScores))
	}
}

func TestWinnerSoleWinner(t *testing.T) {
	f := newFixture(t, 3)

	match, err := f.service.Create(f.userID, "m", "General", f.teamIDs, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.setScores(t, match.ID, []int{10, 7, 7})

	result, err := f.service.Winner(match.ID, f.userID)
	if err != nil {
		t.Fatalf("winner: %v", err)
	}
	if result.IsTie {
		t.Error("unexpected tie")
	}
	if result.Winners != nil {
		t.Errorf("winners = %+v, want nil for sole winner", result.Winners)
	}
	if result.Winner == nil {
		t.Fatal("winner is nil")
	}
	if result.Winner.Score != 10 {
		t.Errorf("winner score = %d, want 10", result.Winner.Score)
	}
	if result.Winner.Team.TeamName != "Red" {
		t.Errorf("winner team = %s, want Red", result.Winner.Team.TeamName)
	}
}

func TestMatchNotFound(t *testing.T) {
	f := newFixture(t, 1)

	if _, err := f.service.Start(999, f.userID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("start unknown match: err = %v, want ErrMatchNotFound", err)
	}
	if _, err := f.service.Winner(999, f.userID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("winner unknown match: err = %v, want ErrMatchNotFound", err)
	}

	// Matches are scoped per user: another user's id behaves like absence.
	match, err := f.service.Create(f.userID, "m", "General", f.teamIDs, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Get(match.ID, f.userID+1); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("foreign user get: err = %v, want ErrMatchNotFound", err)
	}
}
