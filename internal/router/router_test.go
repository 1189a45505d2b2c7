package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jrabinat-art/agenda/internal/config"
	"github.com/jrabinat-art/agenda/internal/database"
	"github.com/jrabinat-art/agenda/internal/filestore"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	contacts, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("filestore: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "agenda-test",
			ExpireHours: 1,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}

	return SetupRouter(cfg, db, contacts)
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
	token, _ := env.Data["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestAuthRequired(t *testing.T) {
	r := setupTestServer(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/clients", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated request: status %d, want 401", w.Code)
	}
}

func TestRegisterLoginMe(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "anna")

	w, env := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d", w.Code)
	}
	user, _ := env.Data["user"].(map[string]interface{})
	if user["username"] != "anna" {
		t.Errorf("me returned username %v, want anna", user["username"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTestServer(t)
	registerAndLogin(t, r, "bob")

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "bob",
		"password": "not-the-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", w.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "carla")

	if w, _ := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("request after logout: status %d, want 401", w.Code)
	}
}

func TestClientCRUD(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "david")

	// blank name rejected
	w, _ := doJSON(t, r, http.MethodPost, "/api/clients", token, gin.H{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: status %d, want 400", w.Code)
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":  "Maria Soler",
		"email": "maria@example.com",
		"phone": "600111222",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create client: status %d, body %s", w.Code, w.Body.String())
	}
	created, _ := env.Data["client"].(map[string]interface{})
	id := int(created["id"].(float64))

	w, env = doJSON(t, r, http.MethodGet, "/api/clients", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list clients: status %d", w.Code)
	}
	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 client, got %d", len(items))
	}

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), token, gin.H{
		"name":  "Maria Soler",
		"phone": "600999888",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update client: status %d", w.Code)
	}

	if w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete client: status %d", w.Code)
	}

	_, env = doJSON(t, r, http.MethodGet, "/api/clients", token, nil)
	items, _ = env.Data["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(items))
	}
}

func TestRosterSummary(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "eva")

	players := []gin.H{
		{"name": "Pau", "position": "forward", "number": 9, "goals": 10, "assists": 2, "matches": 12},
		{"name": "Nil", "position": "keeper", "number": 1, "goals": 0, "assists": 0, "matches": 14},
	}
	for _, p := range players {
		if w, _ := doJSON(t, r, http.MethodPost, "/api/players", token, p); w.Code != http.StatusOK {
			t.Fatalf("create player: status %d", w.Code)
		}
	}

	_, env := doJSON(t, r, http.MethodGet, "/api/players", token, nil)
	summary, _ := env.Data["summary"].(map[string]interface{})
	if summary["goals"].(float64) != 10 || summary["matches"].(float64) != 26 {
		t.Errorf("unexpected summary: %v", summary)
	}
}

func TestHabitTodayAndProgress(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "fiona")

	// Mon/Wed/Fri habit
	w, env := doJSON(t, r, http.MethodPost, "/api/habits", token, gin.H{
		"name":          "morning run",
		"schedule_type": "weekdays",
		"weekdays":      "1,0,1,0,1,0,0",
		"measure_type":  "boolean",
		"target_count":  12,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create habit: status %d, body %s", w.Code, w.Body.String())
	}
	habit, _ := env.Data["habit"].(map[string]interface{})
	id := int(habit["id"].(float64))

	// 2024-01-01 is a Monday, 2024-01-02 a Tuesday
	_, env = doJSON(t, r, http.MethodGet, "/api/habits/today?date=2024-01-01", token, nil)
	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Monday: expected habit due, got %d items", len(items))
	}

	_, env = doJSON(t, r, http.MethodGet, "/api/habits/today?date=2024-01-02", token, nil)
	items, _ = env.Data["items"].([]interface{})
	if len(items) != 0 {
		t.Fatalf("Tuesday: expected no habits due, got %d items", len(items))
	}

	// log two done days in January
	for _, date := range []string{"2024-01-01", "2024-01-03"} {
		w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/logs", id), token, gin.H{
			"date": date,
			"done": true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("upsert log %s: status %d", date, w.Code)
		}
	}

	_, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress?month=2024-01", id), token, nil)
	if got := env.Data["progress"].(float64); got != 2 {
		t.Errorf("progress = %v, want 2", got)
	}

	// overwriting a day with done=false drops the count to 1
	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/logs", id), token, gin.H{
		"date": "2024-01-01",
		"done": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("overwrite log: status %d", w.Code)
	}
	_, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress?month=2024-01", id), token, nil)
	if got := env.Data["progress"].(float64); got != 1 {
		t.Errorf("progress after overwrite = %v, want 1", got)
	}
}

func TestHabitWeekdaysMaskValidated(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "gil")

	w, _ := doJSON(t, r, http.MethodPost, "/api/habits", token, gin.H{
		"name":          "bad mask",
		"schedule_type": "weekdays",
		"weekdays":      "1,0,1",
		"measure_type":  "boolean",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("short mask: status %d, want 400", w.Code)
	}
}

func TestHabitDeleteRemovesLogs(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "hugo")

	_, env := doJSON(t, r, http.MethodPost, "/api/habits", token, gin.H{
		"name":          "stretch",
		"schedule_type": "daily",
		"measure_type":  "boolean",
	})
	habit, _ := env.Data["habit"].(map[string]interface{})
	id := int(habit["id"].(float64))

	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/habits/%d/logs", id), token, gin.H{
		"date": "2024-05-01", "done": true,
	})

	if w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/habits/%d", id), token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete habit: status %d", w.Code)
	}

	w, _ := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/habits/%d/progress?month=2024-05", id), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("progress on deleted habit: status %d, want 404", w.Code)
	}
}

func TestContactsFlow(t *testing.T) {
	r := setupTestServer(t)
	token := registerAndLogin(t, r, "ines")

	w, _ := doJSON(t, r, http.MethodPost, "/api/contacts", token, gin.H{
		"name":  "Pere",
		"phone": "600555666",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add contact: status %d", w.Code)
	}

	_, env := doJSON(t, r, http.MethodGet, "/api/contacts", token, nil)
	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(items))
	}

	if w, _ := doJSON(t, r, http.MethodDelete, "/api/contacts/0", token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete contact: status %d", w.Code)
	}

	_, env = doJSON(t, r, http.MethodGet, "/api/contacts", token, nil)
	items, _ = env.Data["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("expected empty contacts, got %d", len(items))
	}
}
