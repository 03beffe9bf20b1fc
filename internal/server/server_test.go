package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"eshika-chat/config"
	"eshika-chat/internal/domain"
	"eshika-chat/internal/gateway"
	"eshika-chat/internal/handler"
	"eshika-chat/internal/middleware"
	"eshika-chat/internal/repository"
	"eshika-chat/internal/services"
	"eshika-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	engine *gin.Engine
	repo   repository.UserRepository
}

func newTestServer(t *testing.T, gen gateway.Generator) *testServer {
	t.Helper()
	cfg := &config.Config{AppMode: TestMode, AppPort: "0"}
	l := logger.NewNop()

	repo, err := repository.NewDocumentRepository(context.Background(),
		repository.NewFileBlob(filepath.Join(t.TempDir(), "users.json")), l)
	require.NoError(t, err)

	gw := gateway.New(gen, gateway.Config{System: gateway.DefaultSystemConfig()}, l)
	authService := services.NewAuthService(repo, services.PlaintextVerifier{}, l)
	chatService := services.NewChatService(repo, gw, l)
	historyService := services.NewHistoryService(repo)

	srv := New(cfg, l)
	srv.SetupRoutes(&Handlers{
		Auth:    handler.NewAuthHandler(authService),
		History: handler.NewHistoryHandler(historyService, chatService),
		Chat:    handler.NewChatHandler(chatService),
	}, repo)
	return &testServer{engine: srv.Engine(), repo: repo}
}

func (s *testServer) post(t *testing.T, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return w, out
}

func echoGenerator(reply string) gateway.Generator {
	return gateway.GeneratorFunc(func(ctx context.Context, req gateway.Request) (string, error) {
		return reply, nil
	})
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, echoGenerator("hi"))

	w, body := s.post(t, "/api/signup", map[string]string{"username": "Alice", "email": "Alice@X.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice@x.com", user["email"])
	assert.NotContains(t, user, "password")

	w, body = s.post(t, "/api/signup", map[string]string{"username": "B", "email": "alice@x.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", body["error"])

	w, body = s.post(t, "/api/signup", map[string]string{"email": "b@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", body["error"])

	w, body = s.post(t, "/api/login", map[string]string{"email": "ALICE@x.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body["user"].(map[string]any), "password")

	w, body = s.post(t, "/api/login", map[string]string{"email": "alice@x.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", body["error"])

	w, body = s.post(t, "/api/account/update", map[string]string{"email": "alice@x.com", "oldPassword": "bad", "newUsername": "Al"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect current password", body["error"])

	w, body = s.post(t, "/api/account/update", map[string]string{"email": "alice@x.com", "oldPassword": "pw", "newUsername": "Al"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Al", body["user"].(map[string]any)["username"])
}

func TestChatAndHistoryFlow(t *testing.T) {
	s := newTestServer(t, echoGenerator("Hello from the bot"))
	w, _ := s.post(t, "/api/signup", map[string]string{"username": "a", "email": "a@x.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := s.post(t, "/chat", map[string]string{"email": "a@x.com", "message": "Hello world, this is a long message"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello from the bot", body["reply"])
	assert.Equal(t, "Hello world, this is a long me", body["title"])
	firstID := body["chatId"].(string)

	w, body = s.post(t, "/chat", map[string]string{"email": "a@x.com", "message": "second chat"})
	require.Equal(t, http.StatusOK, w.Code)
	secondID := body["chatId"].(string)

	w, _ = s.post(t, "/api/chat/pin", map[string]string{"email": "a@x.com", "chatId": secondID})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = s.post(t, "/api/history", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	history := body["history"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, secondID, history[0].(map[string]any)["id"])
	assert.Equal(t, true, history[0].(map[string]any)["isPinned"])
	assert.NotContains(t, history[0].(map[string]any), "messages")

	w, body = s.post(t, "/api/chat/load", map[string]string{"email": "a@x.com", "chatId": firstID})
	require.Equal(t, http.StatusOK, w.Code)
	messages := body["chat"].(map[string]any)["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, "bot", messages[1].(map[string]any)["role"])

	w, _ = s.post(t, "/api/chat/rename", map[string]string{"email": "a@x.com", "chatId": firstID, "newTitle": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.post(t, "/api/chat/delete", map[string]string{"email": "a@x.com", "chatId": secondID})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = s.post(t, "/api/chat/delete", map[string]string{"email": "a@x.com", "chatId": secondID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Chat not found", body["error"])

	w, body = s.post(t, "/api/history", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	history = body["history"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, "Renamed", history[0].(map[string]any)["title"])

	w, _ = s.post(t, "/api/history", map[string]string{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatGatewayFailureStillReplies(t *testing.T) {
	s := newTestServer(t, gateway.GeneratorFunc(func(ctx context.Context, req gateway.Request) (string, error) {
		return "", &gateway.UpstreamError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}
	}))
	require.NoError(t, s.repo.Upsert(context.Background(), domain.User{ID: "1", Email: "a@x.com", Password: "pw"}))

	w, body := s.post(t, "/chat", map[string]string{"email": "a@x.com", "message": "hello"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, body["reply"], "Quota Exceeded")

	u, err := s.repo.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, u.Chats, 1)
	assert.Len(t, u.Chats[0].Messages, 1)
}

func TestChatUnknownUser(t *testing.T) {
	s := newTestServer(t, echoGenerator("hi"))

	w, body := s.post(t, "/chat", map[string]string{"email": "ghost@x.com", "message": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", body["reply"])
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","store":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Header().Get(middleware.RequestIDHeader))
}
