package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/auth"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if err := auth.InitJWTSecret("router-test-secret"); err != nil {
		t.Fatalf("InitJWTSecret failed: %v", err)
	}

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = conn

	return NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func register(t *testing.T, r *gin.Engine, name, email string) (token string, userID uint) {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), uint(user["id"].(float64))
}

func TestAuthEndpoints(t *testing.T) {
	r := setupServer(t)

	token, _ := register(t, r, "Alice", "alice@x.com")

	// Duplicate email conflicts, case-insensitively.
	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Imposter",
		"email":    "ALICE@X.COM",
		"password": "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@x.com",
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /auth/me, got %d", rec.Code)
	}
	me := decode(t, rec)["user"].(map[string]interface{})
	if me["email"] != "alice@x.com" {
		t.Fatalf("unexpected /auth/me user: %v", me)
	}
}

func TestAuthenticationRequired(t *testing.T) {
	r := setupServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

// TestProjectLifecycle walks the full collaboration flow: Alice creates a
// project and a task, invites Bob, Bob picks the task up, Alice deletes the
// project and every trace of it disappears for both of them.
func TestProjectLifecycle(t *testing.T) {
	r := setupServer(t)

	aliceToken, _ := register(t, r, "Alice", "alice@x.com")
	bobToken, bobID := register(t, r, "Bob", "bob@x.com")

	// Alice creates "Launch"; she is owner and sole member.
	rec := doJSON(t, r, http.MethodPost, "/api/projects", aliceToken, gin.H{"name": "Launch"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	project := decode(t, rec)
	projectID := uint(project["id"].(float64))
	if n := len(project["members"].([]interface{})); n != 1 {
		t.Fatalf("expected 1 member at creation, got %d", n)
	}

	projectPath := fmt.Sprintf("/api/projects/%d", projectID)

	// Bob is not a member yet: the project exists but is off limits.
	rec = doJSON(t, r, http.MethodGet, projectPath, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d", rec.Code)
	}

	// Alice creates a task with all optional fields omitted.
	rec = doJSON(t, r, http.MethodPost, projectPath+"/tasks", aliceToken, gin.H{"title": "Write spec"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	task := decode(t, rec)
	taskID := uint(task["id"].(float64))
	if task["status"] != "todo" {
		t.Fatalf("expected default status todo, got %v", task["status"])
	}
	if task["assignee_id"] != nil || task["due_date"] != nil {
		t.Fatalf("expected null assignee and due date, got %v, %v", task["assignee_id"], task["due_date"])
	}

	// Assigning a non-member is rejected.
	rec = doJSON(t, r, http.MethodPost, projectPath+"/tasks", aliceToken, gin.H{
		"title":       "Bad assignment",
		"assignee_id": bobID,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for non-member assignee, got %d", rec.Code)
	}

	// Inviting an unknown email is 404; inviting Bob succeeds.
	rec = doJSON(t, r, http.MethodPost, projectPath+"/members", aliceToken, gin.H{"email": "ghost@x.com"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown invite email, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, projectPath+"/members", aliceToken, gin.H{"email": "bob@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("invite bob: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Bob assigns the task to himself and starts work.
	rec = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), bobToken, gin.H{
		"assignee_id": bobID,
		"status":      "in_progress",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bob update task: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)
	if uint(updated["assignee_id"].(float64)) != bobID || updated["status"] != "in_progress" {
		t.Fatalf("unexpected task after update: %v", updated)
	}
	if updated["title"] != "Write spec" {
		t.Fatalf("title should be unchanged, got %v", updated["title"])
	}

	// Bob sees the task in his cross-project feed.
	rec = doJSON(t, r, http.MethodGet, "/api/users/me/tasks", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for my tasks, got %d", rec.Code)
	}
	var myTasks []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &myTasks); err != nil {
		t.Fatalf("failed to decode my tasks: %v", err)
	}
	if len(myTasks) != 1 {
		t.Fatalf("expected 1 assigned task, got %d", len(myTasks))
	}

	// Only the owner may delete.
	rec = doJSON(t, r, http.MethodDelete, projectPath, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member delete, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, projectPath, aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204, got %d", rec.Code)
	}

	// The project is gone for everyone, and the cascade took the task with it.
	rec = doJSON(t, r, http.MethodGet, projectPath, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/users/me/tasks", bobToken, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &myTasks); err != nil {
		t.Fatalf("failed to decode my tasks: %v", err)
	}
	if len(myTasks) != 0 {
		t.Fatalf("expected no assigned tasks after cascade, got %d", len(myTasks))
	}
}

func TestCommentFeed(t *testing.T) {
	r := setupServer(t)

	aliceToken, _ := register(t, r, "Alice", "alice@x.com")
	bobToken, _ := register(t, r, "Bob", "bob@x.com")

	rec := doJSON(t, r, http.MethodPost, "/api/projects", aliceToken, gin.H{"name": "Launch"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d", rec.Code)
	}
	projectID := uint(decode(t, rec)["id"].(float64))
	commentsPath := fmt.Sprintf("/api/projects/%d/comments", projectID)

	rec = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/members", projectID), aliceToken, gin.H{"email": "bob@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("invite: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, commentsPath, aliceToken, gin.H{"message": "kicking off"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, r, http.MethodPost, commentsPath, bobToken, gin.H{"message": "here too"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment: expected 201, got %d", rec.Code)
	}

	// Whitespace-only messages are rejected.
	rec = doJSON(t, r, http.MethodPost, commentsPath, bobToken, gin.H{"message": "   "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blank message, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, commentsPath, bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list comments: expected 200, got %d", rec.Code)
	}
	var comments []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("failed to decode comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0]["message"] != "kicking off" || comments[1]["message"] != "here too" {
		t.Fatalf("comments out of order: %v", comments)
	}
	if comments[0]["author_name"] != "Alice" || comments[1]["author_name"] != "Bob" {
		t.Fatalf("unexpected author names: %v", comments)
	}
}
