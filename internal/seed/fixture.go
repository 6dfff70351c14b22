// Package seed loads YAML fixtures into a store through the same
// repositories and services the server uses.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"conversa/internal/domain/models"
)

// Fixture is the file format read by cmd/seed
//
//	arvore:
//	  Projeto A:
//	    Pasta 1: [chat-1]
//	conversas:
//	  - projeto: Projeto A
//	    pasta: Pasta 1
//	    chat_id: chat-1
//	    mensagens:
//	      - {role: user, texto: Oi}
//	      - {role: model, texto: Olá!}
type Fixture struct {
	Structure     models.StructureTree `yaml:"arvore"`
	Conversations []Conversation       `yaml:"conversas"`
}

// Conversation is one seeded chat
type Conversation struct {
	models.ConversationPath `yaml:",inline"`
	Messages                []Message `yaml:"mensagens"`
}

// Message is one seeded message
type Message struct {
	Role models.Role `yaml:"role"`
	Text string      `yaml:"texto"`
}

// LoadFixture reads and validates a fixture file
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return ParseFixture(f)
}

// ParseFixture decodes and validates a fixture
func ParseFixture(r io.Reader) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.NewDecoder(r).Decode(&fixture); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks that every conversation is a sequence of user/model pairs,
// the only shape the server ever writes
func (f *Fixture) Validate() error {
	for i, conv := range f.Conversations {
		if err := conv.ConversationPath.Validate(); err != nil {
			return fmt.Errorf("conversation %d: %w", i, err)
		}
		if len(conv.Messages)%2 != 0 {
			return fmt.Errorf("conversation %s: odd number of messages", conv.Key())
		}
		for j, m := range conv.Messages {
			if !m.Role.Valid() {
				return fmt.Errorf("conversation %s: message %d has unknown role %q", conv.Key(), j, m.Role)
			}
			want := models.RoleUser
			if j%2 == 1 {
				want = models.RoleModel
			}
			if m.Role != want {
				return fmt.Errorf("conversation %s: message %d has role %q, expected %q", conv.Key(), j, m.Role, want)
			}
		}
	}
	return nil
}
