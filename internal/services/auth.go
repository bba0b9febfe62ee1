package services

import (
	"errors"
	"time"

	"github.com/M-Imran22/byte-battle-quize-app/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db            *gorm.DB
	accessSecret  []byte
	refreshSecret []byte
}

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func NewAuthService(db *gorm.DB, accessSecret, refreshSecret string) *AuthService {
	return &AuthService{
		db:            db,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (s *AuthService) Register(username, password string) (*TokenPair, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(user.ID)
}

func (s *AuthService) Login(username, password string) (*TokenPair, *models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return pair, &user, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := s.validate(refreshToken, s.refreshSecret)
	if err != nil {
		return "", err
	}
	return s.sign(userID, s.accessSecret, time.Hour)
}

// ValidateToken verifies an access token and returns the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	return s.validate(tokenString, s.accessSecret)
}

func (s *AuthService) issueTokens(userID uint) (*TokenPair, error) {
	access, err := s.sign(userID, s.accessSecret, time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, s.refreshSecret, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Token: access, RefreshToken: refresh}, nil
}

func (s *AuthService) sign(userID uint, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *AuthService) validate(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, errors.New("invalid id in token")
	}

	return uint(idFloat), nil
}
