package domain

type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)

// TitleLength is how many characters of the first message become the chat title.
const TitleLength = 30

type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	IsPinned  bool      `json:"isPinned"`
	Timestamp int64     `json:"timestamp"`
}

// ChatSummary is the history view of a chat: no message content.
type ChatSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IsPinned bool   `json:"isPinned"`
}

func (c Chat) Clone() Chat {
	out := c
	if c.Messages != nil {
		out.Messages = make([]Message, len(c.Messages))
		copy(out.Messages, c.Messages)
	}
	return out
}

func (c Chat) Summary() ChatSummary {
	return ChatSummary{ID: c.ID, Title: c.Title, IsPinned: c.IsPinned}
}

// TitleFrom truncates text to TitleLength characters (runes, not bytes).
func TitleFrom(text string) string {
	runes := []rune(text)
	if len(runes) <= TitleLength {
		return text
	}
	return string(runes[:TitleLength])
}
