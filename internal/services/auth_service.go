package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/railbook/train-booking-backend/internal/apperrors"
	"github.com/railbook/train-booking-backend/internal/database"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/pkg/jwt"
)

// AuthService handles account registration, login and profile lookup
type AuthService struct {
	accountRepo *database.AccountRepository
	jwtService  *jwt.Service
	bcryptCost  int
	logger      *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo *database.AccountRepository, jwtService *jwt.Service, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Register creates an account and returns fresh tokens
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	account := &models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.AccountRoleUser,
		PhoneNumbers: req.PhoneNumbers,
		Address:      req.Address,
	}
	if err := s.accountRepo.Create(account); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("username or email is already registered")
		}
		return nil, apperrors.Internal("failed to create account", err)
	}

	s.logger.WithField("account_id", account.ID).Info("Account registered")

	return s.issueTokens(account)
}

// Login authenticates by email and password and returns fresh tokens
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, apperrors.Internal("failed to look up account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Validation("invalid email or password")
	}

	if !account.IsActive {
		return nil, apperrors.Validation("account is disabled")
	}

	return s.issueTokens(account)
}

// GetProfile returns the account for an authenticated id
func (s *AuthService) GetProfile(accountID string) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account not found")
		}
		return nil, apperrors.Internal("failed to look up account", err)
	}

	return account, nil
}

func (s *AuthService) issueTokens(account *models.Account) (*models.AuthResponse, error) {
	accountID, err := uuid.Parse(account.ID)
	if err != nil {
		return nil, apperrors.Internal("invalid account id", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(accountID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal("failed to generate access token", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(accountID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}
