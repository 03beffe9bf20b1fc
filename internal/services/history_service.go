package services

import (
	"context"
	"errors"
	"strings"

	"eshika-chat/internal/domain"
	"eshika-chat/internal/repository"
	eshika_errors "eshika-chat/pkg/errors"
)

const defaultChatTitle = "Untitled Chat"

type HistoryService struct {
	userRepo repository.UserRepository
}

func NewHistoryService(userRepo repository.UserRepository) *HistoryService {
	return &HistoryService{userRepo: userRepo}
}

// List returns pinned chats first, then the rest; creation order is kept
// within each group.
func (s *HistoryService) List(ctx context.Context, email string) ([]domain.ChatSummary, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return SortHistory(u.Chats), nil
}

func SortHistory(chats []domain.Chat) []domain.ChatSummary {
	out := make([]domain.ChatSummary, 0, len(chats))
	for _, c := range chats {
		if c.IsPinned {
			out = append(out, c.Summary())
		}
	}
	for _, c := range chats {
		if !c.IsPinned {
			out = append(out, c.Summary())
		}
	}
	return out
}

func (s *HistoryService) Rename(ctx context.Context, email, chatID, newTitle string) error {
	title := strings.TrimSpace(newTitle)
	if title == "" {
		title = defaultChatTitle
	}
	return s.mutateChat(ctx, email, chatID, func(c *domain.Chat) {
		c.Title = title
	})
}

func (s *HistoryService) Delete(ctx context.Context, email, chatID string) error {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return err
	}
	if !u.HasChat(chatID) {
		return ErrChatNotFound
	}
	if err := s.userRepo.DeleteChat(ctx, u.Email, chatID); err != nil {
		if errors.Is(err, eshika_errors.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return nil
}

func (s *HistoryService) TogglePin(ctx context.Context, email, chatID string) error {
	return s.mutateChat(ctx, email, chatID, func(c *domain.Chat) {
		c.IsPinned = !c.IsPinned
	})
}

// SetPin is the idempotent form used when the client sends the desired state.
func (s *HistoryService) SetPin(ctx context.Context, email, chatID string, pinned bool) error {
	return s.mutateChat(ctx, email, chatID, func(c *domain.Chat) {
		c.IsPinned = pinned
	})
}

func (s *HistoryService) mutateChat(ctx context.Context, email, chatID string, fn func(c *domain.Chat)) error {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return err
	}
	c := u.FindChat(chatID)
	if c == nil {
		return ErrChatNotFound
	}
	fn(c)
	return s.userRepo.Upsert(ctx, u)
}

func (s *HistoryService) getUser(ctx context.Context, email string) (domain.User, error) {
	u, err := s.userRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, eshika_errors.ErrNotFound) || errors.Is(err, eshika_errors.ErrInvalidInput) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
