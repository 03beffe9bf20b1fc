package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eshika-chat/internal/domain"
	"eshika-chat/internal/repository"
	eshika_errors "eshika-chat/pkg/errors"
	"eshika-chat/pkg/logger"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	verifier CredentialVerifier
	log      *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, verifier CredentialVerifier, l *logger.Logger) *AuthService {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		log:      l,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type UpdateAccountInput struct {
	Email       string
	OldPassword string
	NewUsername string
	NewPassword string
}

// UserInfo is a user as returned to clients: everything but the password.
type UserInfo struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Chats    []domain.Chat `json:"chats"`
}

func toUserInfo(u domain.User) UserInfo {
	chats := u.Chats
	if chats == nil {
		chats = []domain.Chat{}
	}
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Chats:    chats,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (UserInfo, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return UserInfo{}, ErrInvalidCredentials
	}

	u, err := s.userRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, eshika_errors.ErrNotFound) {
			return UserInfo{}, ErrInvalidCredentials
		}
		return UserInfo{}, err
	}

	if !s.verifier.Verify(u.Password, password) {
		return UserInfo{}, ErrInvalidCredentials
	}

	return toUserInfo(u), nil
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (UserInfo, error) {
	email := domain.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.Username) == "" || email == "" || in.Password == "" {
		return UserInfo{}, ErrMissingFields
	}

	if _, err := s.userRepo.Get(ctx, email); err == nil {
		return UserInfo{}, ErrEmailTaken
	} else if !errors.Is(err, eshika_errors.ErrNotFound) {
		return UserInfo{}, err
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return UserInfo{}, fmt.Errorf("hash password: %w", err)
	}

	newUser := domain.User{
		ID:       uuid.NewString(),
		Username: strings.TrimSpace(in.Username),
		Email:    email,
		Password: stored,
		Chats:    []domain.Chat{},
	}
	if err := s.userRepo.Upsert(ctx, newUser); err != nil {
		return UserInfo{}, err
	}

	s.log.WithContext(ctx).Sugar().Infof("user signed up: %s", email)
	return toUserInfo(newUser), nil
}

// UpdateAccount applies only the supplied fields. The old password is checked
// whenever anything is being changed.
func (s *AuthService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (UserInfo, error) {
	u, err := s.userRepo.Get(ctx, in.Email)
	if err != nil {
		if errors.Is(err, eshika_errors.ErrNotFound) {
			return UserInfo{}, ErrUserNotFound
		}
		return UserInfo{}, err
	}

	newUsername := strings.TrimSpace(in.NewUsername)
	if newUsername == "" && in.NewPassword == "" {
		return toUserInfo(u), nil
	}

	if !s.verifier.Verify(u.Password, in.OldPassword) {
		return UserInfo{}, ErrIncorrectPassword
	}

	if newUsername != "" {
		u.Username = newUsername
	}
	if in.NewPassword != "" {
		stored, err := s.verifier.Hash(in.NewPassword)
		if err != nil {
			return UserInfo{}, fmt.Errorf("hash password: %w", err)
		}
		u.Password = stored
	}

	if err := s.userRepo.Upsert(ctx, u); err != nil {
		return UserInfo{}, err
	}
	return toUserInfo(u), nil
}
