package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gotodo/internal/model"
	"gotodo/internal/pkg/jwtutil"
	"gotodo/internal/repository"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingFields = errors.New("email and password are required")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrWeakPassword  = errors.New("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)")

	// ErrRegistrationFailed deliberately covers the duplicate-email case so a
	// failed registration never reveals whether an account exists.
	ErrRegistrationFailed = errors.New("registration failed, please check your details and try again")

	// ErrInvalidCredential covers both unknown user and wrong password.
	ErrInvalidCredential = errors.New("invalid email or password")
)

// ActivityPublisher enqueues audit events for asynchronous persistence.
type ActivityPublisher interface {
	Publish(ctx context.Context, record model.ActivityRecord) error
}

type AuthService struct {
	userRepo      *repository.UserRepository
	publisher     ActivityPublisher
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, publisher ActivityPublisher, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		publisher:     publisher,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isValidPassword(password) {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRegistrationFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Two registrations can race past the existence check; the unique
		// index wins and the response stays indistinguishable.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRegistrationFailed
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	publishActivity(s.publisher, user.ID, "user.registered", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	publishActivity(s.publisher, user.ID, "user.login", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}
