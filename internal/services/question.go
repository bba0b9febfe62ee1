package services

import (
	"github.com/M-Imran22/byte-battle-quize-app/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

func (s *QuestionService) Create(userID uint, q models.Question) (*models.Question, error) {
	q.ID = 0
	q.UserID = userID
	if err := s.db.Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuestionService) List(userID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// Types returns the distinct q_type values in the user's question bank,
// used by the match form's category filter.
func (s *QuestionService) Types(userID uint) ([]string, error) {
	var types []string
	err := s.db.Model(&models.Question{}).
		Where("user_id = ?", userID).
		Distinct("q_type").
		Order("q_type ASC").
		Pluck("q_type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (s *QuestionService) Get(id, userID uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&q).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	return &q, nil
}

func (s *QuestionService) Update(id, userID uint, in models.Question) (*models.Question, error) {
	q, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if in.QType != "" {
		q.QType = in.QType
	}
	if in.Question != "" {
		q.Question = in.Question
	}
	if in.OptionA != "" {
		q.OptionA = in.OptionA
	}
	if in.OptionB != "" {
		q.OptionB = in.OptionB
	}
	if in.OptionC != "" {
		q.OptionC = in.OptionC
	}
	if in.OptionD != "" {
		q.OptionD = in.OptionD
	}
	if in.CorrectOption != "" {
		q.CorrectOption = in.CorrectOption
	}

	if err := s.db.Save(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id, userID uint) error {
	q, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(q).Error
}
