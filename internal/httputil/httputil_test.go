package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"prompt":"oi"}`, false},
		{"unknown fields accepted", `{"prompt":"oi","extra":1}`, false},
		{"malformed", `{"prompt":`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest struct {
				Prompt string `json:"prompt"`
			}
			err := ParseJSON(httptest.NewRecorder(), r, &dest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "oi", dest.Prompt)
		})
	}
}

func TestParseJSONTooLarge(t *testing.T) {
	body := `{"prompt":"` + strings.Repeat("a", 11<<20) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest map[string]interface{}

	err := ParseJSON(httptest.NewRecorder(), r, &dest)
	assert.True(t, errors.Is(err, ErrBodyTooLarge), "got %v", err)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondError(w, http.StatusBadRequest, "prompt: cannot be blank.")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "prompt: cannot be blank.", body["detail"])
	assert.Equal(t, "Bad Request", body["title"])
	assert.EqualValues(t, 400, body["status"])
}

func TestRequestIDContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(r))

	r = WithRequestID(r, "abc")
	assert.Equal(t, "abc", GetRequestID(r))
}
