package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxPathSegmentLength is the maximum length for projeto, pasta and chat_id
const MaxPathSegmentLength = 255

// Role identifies the author of a message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the two persisted roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// ConversationPath addresses one chat thread: project, folder and chat id
// supplied by the caller. Segments are free-form; no parent needs to exist.
type ConversationPath struct {
	Project string `json:"projeto" yaml:"projeto"`
	Folder  string `json:"pasta" yaml:"pasta"`
	ChatID  string `json:"chat_id" yaml:"chat_id"`
}

// Key returns the nested document address of the conversation's messages
// parent, e.g. "projetos/p/pastas/f/conversas/c". Backends with flat
// collections store it verbatim as chat_path.
func (p ConversationPath) Key() string {
	return fmt.Sprintf("projetos/%s/pastas/%s/conversas/%s", p.Project, p.Folder, p.ChatID)
}

func (p ConversationPath) String() string {
	return p.Key()
}

// Validate requires every segment to be non-blank, at most
// MaxPathSegmentLength long and free of '/', which would shift the
// nested address onto a different document
func (p ConversationPath) Validate() error {
	segment := []validation.Rule{
		validation.By(notBlank),
		validation.RuneLength(1, MaxPathSegmentLength),
		validation.By(noSlash),
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.Project, segment...),
		validation.Field(&p.Folder, segment...),
		validation.Field(&p.ChatID, segment...),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func noSlash(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		return errors.New("must not contain '/'")
	}
	return nil
}

// Message is one immutable record of a conversation
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"texto"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry is the client-facing {role, texto} shape of a message
type HistoryEntry struct {
	Role Role   `json:"role"`
	Text string `json:"texto"`
}

// ToHistory drops ids and timestamps, keeping order
func ToHistory(messages []Message) []HistoryEntry {
	entries := make([]HistoryEntry, len(messages))
	for i, m := range messages {
		entries[i] = HistoryEntry{Role: m.Role, Text: m.Text}
	}
	return entries
}
