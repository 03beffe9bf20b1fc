package gateway

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"eshika-chat/internal/domain"
)

var ErrInvalidImage = errors.New("invalid inline image")

// SystemConfig is the fixed part of every prompt.
type SystemConfig struct {
	BotName         string
	Creator         string
	Founder         string
	DefaultLanguage string
	// ContextTurns is how many earlier messages of the chat are sent along.
	// Zero keeps every request single-turn.
	ContextTurns int
}

func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		BotName:         "Eshika Smart Bot AI",
		Creator:         "N. Rishi Kumar son of N. Chiranjeevi",
		Founder:         "Raghu Varma",
		DefaultLanguage: "en-US",
	}
}

// Image is an inline image as sent by the client: base64 data plus mime type.
type Image struct {
	MIMEType string `json:"mime"`
	Data     string `json:"data"`
}

// Decode validates the image and returns its raw bytes.
func (i Image) Decode() ([]byte, error) {
	if strings.TrimSpace(i.MIMEType) == "" || i.Data == "" {
		return nil, ErrInvalidImage
	}
	data := i.Data
	// tolerate data URLs: "data:image/png;base64,...."
	if idx := strings.Index(data, ";base64,"); strings.HasPrefix(data, "data:") && idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return raw, nil
}

type InlineData struct {
	MIMEType string
	Data     []byte
}

// HistoryTurn is a prior message replayed as conversation context.
type HistoryTurn struct {
	Role domain.MessageRole
	Text string
}

// Request is everything the generator needs for one call.
type Request struct {
	Model   string
	History []HistoryTurn
	Text    string
	Image   *InlineData
}

// BuildPrompt assembles the request for one user turn. It performs no I/O.
func BuildPrompt(cfg SystemConfig, conversation []domain.Message, message, language string, image *Image) (Request, error) {
	if language == "" {
		language = cfg.DefaultLanguage
	}

	req := Request{
		Text: systemPrompt(cfg, language) + "\n\nUser: " + message,
	}

	if cfg.ContextTurns > 0 && len(conversation) > 0 {
		start := len(conversation) - cfg.ContextTurns
		if start < 0 {
			start = 0
		}
		for _, m := range conversation[start:] {
			req.History = append(req.History, HistoryTurn{Role: m.Role, Text: m.Content})
		}
	}

	if image != nil {
		raw, err := image.Decode()
		if err != nil {
			return Request{}, err
		}
		req.Image = &InlineData{MIMEType: image.MIMEType, Data: raw}
	}
	return req, nil
}

func systemPrompt(cfg SystemConfig, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s 🤖. Created by %s.\n", cfg.BotName, cfg.Creator)
	if cfg.Founder != "" {
		fmt.Fprintf(&b, "Founder/Chairman: %s.\n", cfg.Founder)
	}
	b.WriteString("\nYOUR IDENTITY (ONLY mention if asked \"who are you\"):\n")
	fmt.Fprintf(&b, "\"I am %s created by %s.\"\n", cfg.BotName, cfg.Creator)
	b.WriteString("\nGUIDELINES:\n")
	b.WriteString("- BE CONCISE. Do NOT repeat your full intro in every message.\n")
	b.WriteString("- Use emojis 🌟.\n")
	b.WriteString("- Analyze images if provided.\n")
	fmt.Fprintf(&b, "- Reply in %s.", language)
	return b.String()
}
