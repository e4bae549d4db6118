package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"portal/config"
	"portal/database"
	"portal/models"
	"portal/services"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWTSecret = "test-secret"

	dsn := fmt.Sprintf("file:quiz_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Question{}, &models.Attempt{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db
	database.RDB = nil

	router := gin.New()
	api := router.Group("/api/v1")
	RegisterRoutes(api)
	return router
}

// seedBank creates questions where the correct option is always index 1
func seedBank(t *testing.T, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		question := models.Question{
			Position:      i + 1,
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
			CorrectOption: 1,
		}
		if err := database.DB.Create(&question).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}
}

func createUser(t *testing.T, status string, lastAttempt *time.Time) (models.User, string) {
	t.Helper()
	user := models.User{
		DiscordID:     fmt.Sprintf("discord-%d", atomic.AddInt64(&testDBCounter, 1)),
		Username:      "tester",
		Status:        status,
		LastAttemptAt: lastAttempt,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, false)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// answers builds a submission payload; nil entries stay null in JSON
func answers(values ...*int) map[string]interface{} {
	return map[string]interface{}{"answers": values}
}

func intp(v int) *int { return &v }

func repeated(v *int, count int) []*int {
	out := make([]*int, count)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestGetQuestionsHidesCorrectOption(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	_, token := createUser(t, models.StatusNew, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/quiz/questions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var payload []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 10 {
		t.Fatalf("len = %d, want 10", len(payload))
	}
	for _, question := range payload {
		if _, leaked := question["correct_option"]; leaked {
			t.Fatal("correct option index must never be served to quiz takers")
		}
		if len(question["options"].([]interface{})) != 4 {
			t.Error("options must be served in full")
		}
	}
}

func TestGetQuestionsRequiresAuth(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)

	w := doRequest(router, http.MethodGet, "/api/v1/quiz/questions", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSubmitQuizPass(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	user, token := createUser(t, models.StatusNew, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 10)...))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Score != 10 || resp.Total != 10 || !resp.Passed {
		t.Errorf("response = %+v, want 10/10 passed", resp)
	}
	// No side channel configured in tests
	if resp.RoleAssigned {
		t.Error("role must not be reported assigned without a configured side channel")
	}

	var stored models.User
	database.DB.First(&stored, "id = ?", user.ID)
	if stored.Status != models.StatusPassed {
		t.Errorf("stored status = %q, want %q", stored.Status, models.StatusPassed)
	}
}

func TestSubmitQuizFailThenCooldown(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	user, token := createUser(t, models.StatusNew, nil)

	// All wrong
	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(0), 10)...))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var resp SubmitResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Passed || resp.Score != 0 {
		t.Errorf("response = %+v, want 0/10 failed", resp)
	}

	var stored models.User
	database.DB.First(&stored, "id = ?", user.ID)
	if stored.Status != models.StatusFailed {
		t.Fatalf("stored status = %q, want %q", stored.Status, models.StatusFailed)
	}

	// Immediate retry is rejected with the remaining wait
	w = doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 10)...))
	if w.Code != http.StatusForbidden {
		t.Fatalf("retry status = %d, want 403, body %s", w.Code, w.Body.String())
	}
	var rejection map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &rejection)
	if rejection["reason"] != "cooldown" {
		t.Errorf("reason = %v, want cooldown", rejection["reason"])
	}
	if remaining, ok := rejection["remaining_cooldown_ms"].(float64); !ok || remaining <= 0 {
		t.Errorf("remaining_cooldown_ms = %v, want a positive value", rejection["remaining_cooldown_ms"])
	}
}

func TestSubmitQuizAlreadyPassed(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	_, token := createUser(t, models.StatusPassed, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 10)...))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}
	var rejection map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &rejection)
	if rejection["reason"] != "already-passed" {
		t.Errorf("reason = %v, want already-passed", rejection["reason"])
	}
}

func TestSubmitQuizWrongAnswerCount(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	user, token := createUser(t, models.StatusNew, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 7)...))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}

	// A rejected submission must not consume the attempt
	var count int64
	database.DB.Model(&models.Attempt{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("attempt count = %d, want 0", count)
	}
	var stored models.User
	database.DB.First(&stored, "id = ?", user.ID)
	if stored.Status != models.StatusNew {
		t.Errorf("stored status = %q, want %q", stored.Status, models.StatusNew)
	}
}

func TestSubmitQuizNullAnswersScoreZero(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	_, token := createUser(t, models.StatusNew, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(nil, 10)...))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp SubmitResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Score != 0 || resp.Passed {
		t.Errorf("all-null submission scored %d, want 0 failed", resp.Score)
	}
}

func TestSubmitQuizHeldLock(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	user, token := createUser(t, models.StatusNew, nil)

	ctx := context.Background()
	if !services.AcquireSubmitLock(ctx, user.ID) {
		t.Fatal("failed to take the lock for the test")
	}
	defer services.ReleaseSubmitLock(ctx, user.ID)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 10)...))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429, body %s", w.Code, w.Body.String())
	}
}

func TestGetEligibility(t *testing.T) {
	router := setupTest(t)
	recent := time.Now().Add(-time.Hour)
	_, token := createUser(t, models.StatusFailed, &recent)

	w := doRequest(router, http.MethodGet, "/api/v1/quiz/eligibility", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp EligibilityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Allowed {
		t.Error("user inside the cooldown must not be eligible")
	}
	if resp.Reason != "cooldown" {
		t.Errorf("reason = %q, want cooldown", resp.Reason)
	}
	if resp.RemainingCooldownMs <= 0 {
		t.Errorf("RemainingCooldownMs = %d, want positive", resp.RemainingCooldownMs)
	}
}

func TestGetMyAttempts(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	_, token := createUser(t, models.StatusNew, nil)

	w := doRequest(router, http.MethodPost, "/api/v1/quiz/submit", token, answers(repeated(intp(1), 10)...))
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/v1/quiz/attempts", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var attempts []models.Attempt
	if err := json.Unmarshal(w.Body.Bytes(), &attempts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("len(attempts) = %d, want 1", len(attempts))
	}
	if attempts[0].Origin != models.OriginUser || !attempts[0].Passed {
		t.Errorf("attempt = %+v, want passed user attempt", attempts[0])
	}
}

func TestBlockedUserRejected(t *testing.T) {
	router := setupTest(t)
	seedBank(t, 10)
	user, token := createUser(t, models.StatusNew, nil)
	database.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("blocked", true)

	w := doRequest(router, http.MethodGet, "/api/v1/quiz/questions", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
