package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/utils"
)

const minPasswordLength = 6

type RegisterInput struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	DB     *gorm.DB
	Tokens *utils.TokenIssuer
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

// Register creates a student account. Admin roles are provisioned out of band.
func (as *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalidInput("invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalidInput("password must be at least 6 characters")
	}

	db := as.DB.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, persistence(err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistence(err)
	}

	user := models.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      models.RoleStudent,
	}
	if err := db.Omit(clause.Associations).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, persistence(err)
	}

	utils.InfoLogger.WithField("email", user.Email).Info("user registered")
	return as.issue(&user)
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := as.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return as.issue(&user)
}

func (as *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := as.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return &user, nil
}

func (as *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := as.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, persistence(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
