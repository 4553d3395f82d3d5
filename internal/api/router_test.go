package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"qna_board/internal/api/middleware"
	"qna_board/internal/app/service"
	"qna_board/internal/common"
	"qna_board/internal/common/security"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository/memory"
	"qna_board/internal/platform/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router http.Handler
	users  *memory.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	categories := memory.NewCategoryRepository()
	questions := memory.NewQuestionRepository()
	answers := memory.NewAnswerRepository()
	sessions := session.NewMemoryStore()

	tokenService := security.NewTokenService([]byte("router-test-secret"), time.Hour)
	auth := middleware.NewAuth(users, sessions)

	router := NewRouter(
		tokenService,
		auth,
		service.NewAuthService(users, tokenService, sessions),
		service.NewCategoryService(categories),
		service.NewQuestionService(questions, answers, categories),
		service.NewAnswerService(answers, questions),
		[]string{"*"},
	)
	return &testEnv{router: router, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// register signs up a user through the API and returns their token and id.
func (e *testEnv) register(t *testing.T, username, email string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", "", service.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[service.AuthResponse](t, rec)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	token, _ := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[model.User](t, rec)
	assert.Equal(t, "alice", me.Username)
	assert.Empty(t, me.HashedPassword)

	// Duplicate registration
	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", service.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with the wrong password
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", service.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid login credentials", decode[common.MessageResponse](t, rec).Message)

	// And with the right one
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", service.LoginRequest{
		Email: "alice@example.com", Password: "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRouteRejections(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", token[:len(token)-2]+"zz", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decode[common.MessageResponse](t, rec).Message)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decode[common.MessageResponse](t, rec).Message)

	// The token still verifies cryptographically but is no longer listed
	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized to access this route", decode[common.MessageResponse](t, rec).Message)
}

func TestCategoryAdminGate(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.register(t, "alice", "alice@example.com")
	adminToken, adminID := env.register(t, "root", "root@example.com")
	env.users.SetAdmin(adminID, true)

	rec := env.do(t, http.MethodPost, "/api/v1/categories", userToken, service.CreateCategoryRequest{Name: "Go"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized as admin", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/v1/categories", adminToken, service.CreateCategoryRequest{Name: "Go"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[model.Category](t, rec)
	assert.Equal(t, "go", category.Slug)

	rec = env.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Category](t, rec), 1)
}

func TestQuestionOwnershipOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.register(t, "alice", "alice@example.com")
	bobToken, _ := env.register(t, "bob", "bob@example.com")
	adminToken, adminID := env.register(t, "root", "root@example.com")
	env.users.SetAdmin(adminID, true)

	rec := env.do(t, http.MethodPost, "/api/v1/categories", adminToken, service.CreateCategoryRequest{Name: "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[model.Category](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/questions", aliceToken, service.CreateQuestionRequest{
		Title: "How do goroutines work?", Content: "Details please", CategoryID: category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	question := decode[model.Question](t, rec)

	// Reads are public
	rec = env.do(t, http.MethodGet, "/api/v1/questions/"+question.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Only the owner may edit, admins included
	rec = env.do(t, http.MethodPut, "/api/v1/questions/"+question.ID, bobToken, service.UpdateQuestionRequest{Title: "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Sorry you dont have permission to edit this question", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPut, "/api/v1/questions/"+question.ID, adminToken, service.UpdateQuestionRequest{Title: "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Deletes allow an admin as well as the owner
	rec = env.do(t, http.MethodDelete, "/api/v1/questions/"+question.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to delete this question", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodDelete, "/api/v1/questions/"+question.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Question removed", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, "/api/v1/questions/"+question.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnswerFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	askerToken, _ := env.register(t, "alice", "alice@example.com")
	answererToken, _ := env.register(t, "bob", "bob@example.com")
	adminToken, adminID := env.register(t, "root", "root@example.com")
	env.users.SetAdmin(adminID, true)

	rec := env.do(t, http.MethodPost, "/api/v1/categories", adminToken, service.CreateCategoryRequest{Name: "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[model.Category](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/questions", askerToken, service.CreateQuestionRequest{
		Title: "Channels vs mutexes?", Content: "When to use which", CategoryID: category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	question := decode[model.Question](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/questions/"+question.ID+"/answers", answererToken, service.AddAnswerRequest{
		Content: "Prefer channels for ownership transfer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	answer := decode[model.Answer](t, rec)

	// Editing someone else's answer
	rec = env.do(t, http.MethodPut, "/api/v1/answers/"+answer.ID, askerToken, service.UpdateAnswerRequest{Content: "nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorised to answer this question", decode[common.MessageResponse](t, rec).Message)

	// Only the question owner accepts
	rec = env.do(t, http.MethodPost, "/api/v1/answers/"+answer.ID+"/accept", answererToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only the question owner can accept an answer", decode[common.MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/v1/answers/"+answer.ID+"/accept", askerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/questions/"+question.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Question](t, rec)
	require.Len(t, got.Answers, 1)
	assert.True(t, got.Answers[0].IsAccepted)
}
