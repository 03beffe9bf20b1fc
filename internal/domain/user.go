package domain

import "strings"

// User is the persisted account record. Chats are owned by the user and
// stored inline with it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Chats    []Chat `json:"chats"`
}

// NormalizeEmail is the case-folded lookup key for a user.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Clone returns a deep copy so callers can mutate freely before an upsert.
func (u User) Clone() User {
	out := u
	if u.Chats != nil {
		out.Chats = make([]Chat, len(u.Chats))
		for i, c := range u.Chats {
			out.Chats[i] = c.Clone()
		}
	}
	return out
}

// FindChat returns a pointer into u.Chats, or nil.
func (u *User) FindChat(chatID string) *Chat {
	for i := range u.Chats {
		if u.Chats[i].ID == chatID {
			return &u.Chats[i]
		}
	}
	return nil
}

// RemoveChat drops the chat with the given id and reports whether it existed.
func (u *User) RemoveChat(chatID string) bool {
	for i := range u.Chats {
		if u.Chats[i].ID == chatID {
			u.Chats = append(u.Chats[:i], u.Chats[i+1:]...)
			return true
		}
	}
	return false
}

func (u *User) HasChat(chatID string) bool {
	return u.FindChat(chatID) != nil
}
