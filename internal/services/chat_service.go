package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"eshika-chat/internal/domain"
	"eshika-chat/internal/gateway"
	"eshika-chat/internal/repository"
	eshika_errors "eshika-chat/pkg/errors"
	"eshika-chat/pkg/logger"
)

// Replier answers one user turn; *gateway.Gateway is the production implementation.
type Replier interface {
	Reply(ctx context.Context, t gateway.Turn) (string, error)
}

type ChatService struct {
	userRepo repository.UserRepository
	replier  Replier
	now      func() time.Time
	log      *logger.Logger
}

func NewChatService(userRepo repository.UserRepository, replier Replier, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &ChatService{
		userRepo: userRepo,
		replier:  replier,
		now:      time.Now,
		log:      l,
	}
}

type SendInput struct {
	Email    string
	Message  string
	ChatID   string
	Language string
	Model    string
	Image    *gateway.Image
}

type SendResult struct {
	Reply  string `json:"reply"`
	ChatID string `json:"chatId"`
	Title  string `json:"title"`
}

// ResolveChat returns the user's chat with chatID, or appends a new one titled
// after firstMessage. The returned pointer aliases u.Chats.
func (s *ChatService) ResolveChat(u *domain.User, chatID, firstMessage string) *domain.Chat {
	if chatID != "" {
		if c := u.FindChat(chatID); c != nil {
			return c
		}
	}

	now := s.now()
	u.Chats = append(u.Chats, domain.Chat{
		ID:        s.newChatID(u, now),
		Title:     domain.TitleFrom(firstMessage),
		Messages:  []domain.Message{},
		IsPinned:  false,
		Timestamp: now.UnixMilli(),
	})
	return &u.Chats[len(u.Chats)-1]
}

// AppendMessage only mutates the chat; the caller persists.
func (s *ChatService) AppendMessage(c *domain.Chat, role domain.MessageRole, content string) {
	c.Messages = append(c.Messages, domain.Message{Role: role, Content: content})
}

func (s *ChatService) LoadChat(ctx context.Context, email, chatID string) (domain.Chat, error) {
	u, err := s.getUser(ctx, email)
	if err != nil {
		return domain.Chat{}, err
	}
	c := u.FindChat(chatID)
	if c == nil {
		return domain.Chat{}, ErrChatNotFound
	}
	return c.Clone(), nil
}

// SendMessage runs one conversation turn. The user's message is persisted
// before the model is called so it survives a gateway failure; the bot reply
// is persisted afterwards. On a gateway failure the returned error is a
// *gateway.GatewayError holding the reply to show, and no bot turn is stored.
func (s *ChatService) SendMessage(ctx context.Context, in SendInput) (SendResult, error) {
	if strings.TrimSpace(in.Message) == "" || strings.TrimSpace(in.Email) == "" {
		return SendResult{}, ErrMissingFields
	}
	if in.Image != nil {
		if _, err := in.Image.Decode(); err != nil {
			return SendResult{}, ErrInvalidImage
		}
	}

	u, err := s.getUser(ctx, in.Email)
	if err != nil {
		return SendResult{}, err
	}

	chat := s.ResolveChat(&u, in.ChatID, in.Message)
	conversation := append([]domain.Message(nil), chat.Messages...)
	s.AppendMessage(chat, domain.RoleUser, in.Message)
	chatID, title := chat.ID, chat.Title

	if err := s.userRepo.Upsert(ctx, u); err != nil {
		return SendResult{}, fmt.Errorf("persist user message: %w", err)
	}

	// The model call and the follow-up write outlive a disconnected client.
	turnCtx := context.WithoutCancel(ctx)
	reply, err := s.replier.Reply(turnCtx, gateway.Turn{
		Conversation: conversation,
		Message:      in.Message,
		Language:     in.Language,
		Model:        in.Model,
		Image:        in.Image,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidImage) {
			return SendResult{}, ErrInvalidImage
		}
		s.log.WithContext(ctx).Sugar().Warnf("chat %s: turn stored without bot reply: %v", chatID, err)
		return SendResult{ChatID: chatID, Title: title}, err
	}

	s.AppendMessage(u.FindChat(chatID), domain.RoleBot, reply)
	if err := s.userRepo.Upsert(turnCtx, u); err != nil {
		return SendResult{}, fmt.Errorf("persist bot reply: %w", err)
	}

	return SendResult{Reply: reply, ChatID: chatID, Title: title}, nil
}

func (s *ChatService) getUser(ctx context.Context, email string) (domain.User, error) {
	u, err := s.userRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, eshika_errors.ErrNotFound) || errors.Is(err, eshika_errors.ErrInvalidInput) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// newChatID is unix millis plus a three-digit random suffix, retried until it
// is unique among the user's chats.
func (s *ChatService) newChatID(u *domain.User, now time.Time) string {
	for attempt := 0; ; attempt++ {
		// move to the next millisecond once this one's suffixes look exhausted
		ms := now.UnixMilli() + int64(attempt/1000)
		id := strconv.FormatInt(ms, 10) + strconv.Itoa(100+rand.IntN(900))
		if !u.HasChat(id) {
			return id
		}
	}
}
