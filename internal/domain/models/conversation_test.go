package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationPathValidate(t *testing.T) {
	tests := []struct {
		name    string
		path    ConversationPath
		wantErr bool
	}{
		{"plain", ConversationPath{Project: "Projeto A", Folder: "Pasta 1", ChatID: "chat-1"}, false},
		{"unicode at limit", ConversationPath{Project: strings.Repeat("é", MaxPathSegmentLength), Folder: "f", ChatID: "c"}, false},
		{"slash in project", ConversationPath{Project: "a/b", Folder: "f", ChatID: "c"}, true},
		{"slash in folder", ConversationPath{Project: "p", Folder: "/", ChatID: "c"}, true},
		{"blank chat id", ConversationPath{Project: "p", Folder: "f", ChatID: " "}, true},
		{"missing folder", ConversationPath{Project: "p", ChatID: "c"}, true},
		{"too long", ConversationPath{Project: strings.Repeat("p", MaxPathSegmentLength+1), Folder: "f", ChatID: "c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.path.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModel.Valid())
	assert.False(t, Role("assistant").Valid())
	assert.False(t, Role("").Valid())
}
