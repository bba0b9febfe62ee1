package services

import (
	"github.com/M-Imran22/byte-battle-quize-app/internal/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

func (s *TeamService) Create(userID uint, teamName, description string) (*models.Team, error) {
	team := models.Team{
		TeamName:    teamName,
		Description: description,
		UserID:      userID,
	}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) List(userID uint) ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamService) Get(id, userID uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&team).Error; err != nil {
		return nil, ErrTeamNotFound
	}
	return &team, nil
}

func (s *TeamService) Update(id, userID uint, teamName, description string) (*models.Team, error) {
	team, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if teamName != "" {
		team.TeamName = teamName
	}
	if description != "" {
		team.Description = description
	}
	if err := s.db.Save(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Delete(id, userID uint) error {
	team, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	if err := s.db.Where("team_id = ?", team.ID).Delete(&models.TeamMatch{}).Error; err != nil {
		return err
	}
	return s.db.Delete(team).Error
}
