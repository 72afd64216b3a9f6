package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ladlehub/backend/internal/middleware"
	"github.com/ladlehub/backend/internal/models"
)

// Session tokens are valid for a fixed 7 days; there is no refresh or
// revocation — logout is client-side token deletion.
const tokenTTL = 7 * 24 * time.Hour

// AuthService handles registration, login, Google OAuth, and session tokens
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates a password-backed account and returns it with a session token
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, "", newValidationError("Email, password, and name are required")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	hash := string(hashed)

	user := models.User{
		Email:        email,
		PasswordHash: &hash,
		Name:         name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Unknown emails, OAuth-only accounts, and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", newValidationError("Email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GoogleLogin signs a Google user in. An existing account with the same
// email gets the Google identity linked; otherwise a password-less account
// is created.
func (s *AuthService) GoogleLogin(ctx context.Context, email, name, googleID string, avatarURL *string) (*models.User, string, error) {
	if email == "" || name == "" || googleID == "" {
		return nil, "", newValidationError("Google user information is required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error
	switch {
	case err == nil:
		// Known Google identity
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err == nil {
			// Link the Google identity to the existing account
			user.GoogleID = &googleID
			user.AvatarURL = avatarURL
			if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
				return nil, "", err
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				Email:     email,
				Name:      name,
				GoogleID:  &googleID,
				AvatarURL: avatarURL,
			}
			if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
				return nil, "", err
			}
		} else {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUser returns the user for a resolved token identity
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GenerateToken signs a session token carrying the user id and expiry
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	return &middleware.TokenClaims{UserID: userID}, nil
}
