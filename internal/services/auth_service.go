package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ai-hrms/hr-management-api/internal/constants"
	"github.com/ai-hrms/hr-management-api/internal/models"
	"github.com/ai-hrms/hr-management-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrRegistrationInvalid  = errors.New("name, email and password are required")
	ErrInvalidOrgSize       = errors.New("invalid organization size")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles organization registration and login.
type AuthService struct {
	orgRepo repository.OrganizationRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(orgRepo repository.OrganizationRepository) *AuthService {
	return &AuthService{
		orgRepo: orgRepo,
	}
}

// RegisterInput represents the required information to register an organization.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Industry string
	Size     models.OrganizationSize
}

// Register creates a new organization account. The password is hashed
// explicitly before the record is persisted; nothing downstream of this
// method ever sees the plaintext.
func (s *AuthService) Register(input RegisterInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrRegistrationInvalid
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Size == "" {
		input.Size = models.SizeMicro
	}
	if !models.ValidOrganizationSize(input.Size) {
		return nil, ErrInvalidOrgSize
	}

	if _, err := s.orgRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Industry:     input.Industry,
		Size:         input.Size,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated organization.
func (s *AuthService) Login(input LoginInput) (*models.Organization, error) {
	org, err := s.orgRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(org.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return org, nil
}

// GetOrganization retrieves an organization by ID.
func (s *AuthService) GetOrganization(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	return org, nil
}
