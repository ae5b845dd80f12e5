package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gotodo/internal/bootstrap"
	"gotodo/internal/config"
	"gotodo/internal/model"
	sqliteClient "gotodo/internal/platform/sqlite"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqliteClient.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database failed: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Todo{}, &model.ActivityRecord{}); err != nil {
		t.Fatalf("migrate test database failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		App: config.AppConfig{
			Name:    "gotodo-test",
			Env:     "test",
			GinMode: gin.TestMode,
		},
		Auth: config.AuthConfig{
			JWTSecret:     "api-test-secret",
			JWTExpireHour: 1,
		},
		CORS: config.CORSConfig{
			AllowedOrigin: "http://localhost:5173",
		},
	}

	return NewRouter(&bootstrap.App{
		Config:    cfg,
		DB:        db,
		StartedAt: time.Now(),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		dec := json.NewDecoder(strings.NewReader(rec.Body.String()))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			t.Fatalf("decode response %q failed: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func registerUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", email, rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", email)
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %v, want ok", body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"].(string)); err != nil {
		t.Fatalf("timestamp not RFC3339: %v", err)
	}
}

func TestFullTodoLifecycle(t *testing.T) {
	router := newTestRouter(t)

	token := registerUser(t, router, "a@b.com", "Passw0rd!")

	// Create.
	rec, body := doJSON(t, router, http.MethodPost, "/api/todos", token, `{"title":"Buy milk"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	todo := body["todo"].(map[string]any)
	if todo["title"] != "Buy milk" {
		t.Fatalf("created title = %v, want Buy milk", todo["title"])
	}
	if todo["completed"] != false {
		t.Fatalf("created completed = %v, want false", todo["completed"])
	}
	id := todo["id"].(json.Number).String()

	// Complete it.
	rec, body = doJSON(t, router, http.MethodPut, "/api/todos/"+id, token, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["todo"].(map[string]any)["completed"] != true {
		t.Fatalf("updated completed = %v, want true", body["todo"].(map[string]any)["completed"])
	}

	// Delete it.
	rec, body = doJSON(t, router, http.MethodDelete, "/api/todos/"+id, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("delete success = %v, want true", body["success"])
	}

	// List is empty again.
	rec, body = doJSON(t, router, http.MethodGet, "/api/todos", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("list success = %v, want true", body["success"])
	}
	if todos := body["todos"].([]any); len(todos) != 0 {
		t.Fatalf("list after delete has %d todos, want 0", len(todos))
	}
}

func TestLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "a@b.com", "Passw0rd!")

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@b.com","password":"Passw0rd!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", rec.Code, rec.Body.String())
	}
	token := body["token"].(string)

	rec, body = doJSON(t, router, http.MethodGet, "/api/auth/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["user"].(map[string]any)["email"] != "a@b.com" {
		t.Fatalf("me email = %v, want a@b.com", body["user"])
	}
}

func TestLoginWrongPasswordGeneric(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "a@b.com", "Passw0rd!")

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@b.com","password":"Wr0ngPass!"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	message := body["message"].(string)
	if message != "invalid email or password" {
		t.Fatalf("message = %q, want generic invalid-credentials", message)
	}

	// Unknown account yields the exact same response.
	rec2, body2 := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ghost@b.com","password":"Passw0rd!"}`)
	if rec2.Code != rec.Code || body2["message"] != message {
		t.Fatalf("unknown-user login differs: %d %v", rec2.Code, body2["message"])
	}
}

func TestDuplicateRegistrationDoesNotRevealAccount(t *testing.T) {
	router := newTestRouter(t)

	registerUser(t, router, "a@b.com", "Passw0rd!")

	rec, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@b.com","password":"0therPass!"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "exists") {
		t.Fatalf("duplicate registration response reveals existence: %s", rec.Body.String())
	}
}

func TestTodoEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/todos"},
		{http.MethodPost, "/api/todos"},
		{http.MethodPut, "/api/todos/1"},
		{http.MethodDelete, "/api/todos/1"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/activity"},
	} {
		rec, _ := doJSON(t, router, probe.method, probe.path, "", `{}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: status = %d, want 401", probe.method, probe.path, rec.Code)
		}
	}
}

func TestCrossUserTodoLooksAbsent(t *testing.T) {
	router := newTestRouter(t)

	aliceToken := registerUser(t, router, "alice@b.com", "Passw0rd!")
	bobToken := registerUser(t, router, "bob@b.com", "Passw0rd!")

	rec, body := doJSON(t, router, http.MethodPost, "/api/todos", aliceToken, `{"title":"secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}
	id := body["todo"].(map[string]any)["id"].(json.Number).String()

	rec, body = doJSON(t, router, http.MethodGet, "/api/todos", bobToken, "")
	if rec.Code != http.StatusOK || len(body["todos"].([]any)) != 0 {
		t.Fatalf("bob's list: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/api/todos/"+id, bobToken, `{"completed":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("bob's update of alice's todo: status = %d, want 404", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/todos/"+id, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("bob's delete of alice's todo: status = %d, want 404", rec.Code)
	}
}

func TestCreateTodoValidation(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "a@b.com", "Passw0rd!")

	for _, body := range []string{
		`{}`,
		`{"title":"   "}`,
		`{"title":123}`,
		`{"title":"` + strings.Repeat("a", 501) + `"}`,
	} {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/todos", token, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("create with %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdateTodoValidation(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "a@b.com", "Passw0rd!")

	rec, body := doJSON(t, router, http.MethodPost, "/api/todos", token, `{"title":"target"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", rec.Code)
	}
	id := body["todo"].(map[string]any)["id"].(json.Number).String()

	// No fields.
	rec, _ = doJSON(t, router, http.MethodPut, "/api/todos/"+id, token, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("update with no fields: status = %d, want 400", rec.Code)
	}

	// Non-boolean completed.
	rec, _ = doJSON(t, router, http.MethodPut, "/api/todos/"+id, token, `{"completed":"yes"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("update with string completed: status = %d, want 400", rec.Code)
	}

	// Bad id.
	rec, _ = doJSON(t, router, http.MethodPut, "/api/todos/abc", token, `{"completed":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("update with non-numeric id: status = %d, want 400", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/todos/0", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete id 0: status = %d, want 400", rec.Code)
	}
}

func TestActivityEmptyWithoutPipeline(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "a@b.com", "Passw0rd!")

	rec, body := doJSON(t, router, http.MethodGet, "/api/activity", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if records := body["activity"].([]any); len(records) != 0 {
		t.Fatalf("activity has %d records without a broker, want 0", len(records))
	}
}
