package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversa/internal/capabilities"
	"conversa/internal/domain/models"
	"conversa/internal/logging"
	"conversa/internal/repository/memory"
	"conversa/internal/service"
)

const fallback = "O modelo não retornou texto."

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) GenerateReply(ctx context.Context, history []models.Message, prompt string) (string, error) {
	return p.reply, p.err
}
func (p *stubProvider) Name() string  { return "lorem" }
func (p *stubProvider) Model() string { return "lorem-fast" }

type fixture struct {
	store *memory.Store
	mux   *http.ServeMux
}

func newFixture(t *testing.T, provider *stubProvider, debug bool) *fixture {
	t.Helper()
	logger := logging.Discard()
	store := memory.NewStore()

	registry, err := capabilities.NewRegistry()
	require.NoError(t, err)

	history := service.NewHistoryService(store, logger)
	chat := service.NewChatService(history, provider, service.ChatConfig{HistoryLimit: 20, FallbackReply: fallback}, logger)

	healthHandler := NewHealthHandler(store, logger)
	structureHandler := NewStructureHandler(service.NewStructureService(store, logger), logger, debug)
	historyHandler := NewHistoryHandler(history, logger, debug)
	chatHandler := NewChatHandler(chat, logger, debug)
	modelsHandler := NewModelsHandler(registry, provider, logger, debug)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", healthHandler.Health)
	mux.HandleFunc("GET /estrutura", structureHandler.GetStructure)
	mux.HandleFunc("POST /estrutura", structureHandler.SaveStructure)
	mux.HandleFunc("GET /historico/{projeto}/{pasta}/{chat_id}", historyHandler.GetHistory)
	mux.HandleFunc("POST /enviar_mensagem", chatHandler.SendMessage)
	mux.HandleFunc("GET /modelos", modelsHandler.ListModels)

	return &fixture{store: store, mux: mux}
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, r)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	}
	return w, decoded
}

func TestHealth(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, body := f.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, true, body["db_conectado"])

	f.store.FailWith = errors.New("down")
	w, body = f.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["db_conectado"])
}

func TestStructureEndpoints(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, body := f.do(t, http.MethodGet, "/estrutura", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body)
	assert.JSONEq(t, `{}`, w.Body.String())

	w, body = f.do(t, http.MethodPost, "/estrutura", `{"arvore":{"Projeto":{"Pasta":["chat-1"]}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sucesso", body["status"])

	w, _ = f.do(t, http.MethodGet, "/estrutura", "")
	assert.JSONEq(t, `{"Projeto":{"Pasta":["chat-1"]}}`, w.Body.String())
}

func TestSaveStructureBadBodies(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"arvore":`},
		{"arvore not a mapping", `{"arvore":[1,2]}`},
		{"arvore missing", `{}`},
		{"arvore null", `{"arvore":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := f.do(t, http.MethodPost, "/estrutura", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, body["detail"])
		})
	}
}

func TestStructureStorageFailure(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)
	f.store.FailWith = errors.New("dial tcp 10.0.0.3:27017: connection refused")

	w, body := f.do(t, http.MethodGet, "/estrutura", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body["detail"], "internal detail must not leak outside debug")

	w, _ = f.do(t, http.MethodPost, "/estrutura", `{"arvore":{}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStorageFailureDebugDetail(t *testing.T) {
	f := newFixture(t, &stubProvider{}, true)
	f.store.FailWith = errors.New("connection refused")

	w, body := f.do(t, http.MethodGet, "/historico/p/f/c", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, body["detail"], "connection refused")
}

func TestSendMessageAndHistory(t *testing.T) {
	f := newFixture(t, &stubProvider{reply: "Olá!"}, false)

	w, body := f.do(t, http.MethodPost, "/enviar_mensagem",
		`{"projeto":"Projeto A","pasta":"Pasta 1","chat_id":"chat-1","prompt":"Oi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Olá!", body["resposta"])

	w, _ = f.do(t, http.MethodGet, "/historico/Projeto%20A/Pasta%201/chat-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"historico":[{"role":"user","texto":"Oi"},{"role":"model","texto":"Olá!"}]}`, w.Body.String())
}

func TestHistoryEmptyConversation(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, _ := f.do(t, http.MethodGet, "/historico/p/f/nada", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"historico":[]}`, w.Body.String())
}

func TestHistoryRejectsEncodedSlash(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, body := f.do(t, http.MethodGet, "/historico/a%2Fb/f/c", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["detail"], "projeto")
}

func TestSendMessageBlankPrompt(t *testing.T) {
	f := newFixture(t, &stubProvider{reply: "nunca"}, false)
	path := models.ConversationPath{Project: "p", Folder: "f", ChatID: "c"}

	w, body := f.do(t, http.MethodPost, "/enviar_mensagem", `{"projeto":"p","pasta":"f","chat_id":"c","prompt":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["detail"], "prompt")
	assert.Equal(t, 0, f.store.Count(path))
}

func TestSendMessageMalformedBody(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, _ := f.do(t, http.MethodPost, "/enviar_mensagem", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessageFallback(t *testing.T) {
	f := newFixture(t, &stubProvider{reply: ""}, false)

	w, body := f.do(t, http.MethodPost, "/enviar_mensagem", `{"projeto":"p","pasta":"f","chat_id":"c","prompt":"oi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fallback, body["resposta"])
}

func TestSendMessageModelFailure(t *testing.T) {
	f := newFixture(t, &stubProvider{err: errors.New("429 quota exceeded")}, false)
	path := models.ConversationPath{Project: "p", Folder: "f", ChatID: "c"}

	w, body := f.do(t, http.MethodPost, "/enviar_mensagem", `{"projeto":"p","pasta":"f","chat_id":"c","prompt":"oi"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body["detail"])
	assert.Equal(t, 0, f.store.Count(path))
}

func TestListModels(t *testing.T) {
	f := newFixture(t, &stubProvider{}, false)

	w, body := f.do(t, http.MethodGet, "/modelos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lorem", body["provedor"])
	assert.Equal(t, "lorem-fast", body["modelo"])
	assert.NotEmpty(t, body["modelos"])
	assert.Equal(t, []interface{}{"anthropic", "gemini", "lorem", "openai", "openrouter"}, body["provedores"])
}
