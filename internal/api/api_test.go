package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/api"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository/sqlite"
	"github.com/vytor/bondflash/internal/services"
	"github.com/vytor/bondflash/internal/shop"
	"github.com/vytor/bondflash/internal/testutil"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger.SetDefault(logger.Discard())

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	cal := services.Calendar{
		Now:      func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
	users := sqlite.NewUserRepository(db)
	reviews := sqlite.NewReviewRepository(db)
	attempts := sqlite.NewAttemptRepository(db)
	achievements := sqlite.NewAchievementRepository(db)
	rituals := sqlite.NewRitualRepository(db)

	rewardSvc := services.NewRewardService(users, achievements, func() float64 { return 0.5 })
	streaks := services.NewStreakService(sqlite.NewActivityRepository(db), cal)

	srv := &api.Server{
		Rewards: rewardSvc,
		Reviews: services.NewReviewService(reviews, attempts, users, streaks, cal, 20),
		Quizzes: services.NewQuizService(attempts, rewardSvc, streaks),
		Rituals: services.NewRitualService(rituals, users, rewardSvc, streaks, cal),
		Shop:    services.NewShopService(users, shop.Default()),
		Summary: services.NewSummaryService(users, reviews, achievements, rituals, streaks, cal),
	}
	return &testServer{t: t, handler: srv.Routes()}
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = ts.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/quiz/answer", map[string]any{
		"lessonId": 1, "questionId": 10, "answer": "hold hands", "correct": true, "quality": 5, "totalQuestions": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quizID := decode[map[string]int64](t, rec)["quizAttemptId"]
	require.NotZero(t, quizID)

	rec = ts.do(http.MethodPost, "/api/quiz/answer", map[string]any{
		"quizAttemptId": quizID, "lessonId": 1, "questionId": 11, "answer": "", "correct": true, "quality": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/quiz/complete", map[string]any{
		"quizAttemptId": quizID, "correctCount": 2, "totalQuestions": 2, "durationSeconds": 20,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode[struct {
		XPEarned     int      `json:"xpEarned"`
		SparksEarned int      `json:"sparksEarned"`
		Level        int      `json:"level"`
		LevelUp      bool     `json:"levelUp"`
		Title        string   `json:"title"`
		Achievements []string `json:"achievements"`
	}](t, rec)
	// 40 + 10 + 40 + 20
	assert.Equal(t, 110, out.XPEarned)
	assert.Equal(t, 11, out.SparksEarned)
	assert.Equal(t, 2, out.Level)
	assert.True(t, out.LevelUp)
	assert.Equal(t, "Steady Starter", out.Title)
	assert.ElementsMatch(t, []string{"quiz-master", "first-quiz"}, out.Achievements)

	rec = ts.do(http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[services.Summary](t, rec)
	assert.Equal(t, 110, sum.CurrentXP)
	assert.Equal(t, 1, sum.StreakDays)
	assert.Len(t, sum.Achievements, 2)
}

func TestQuizAnswer_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"no lesson", map[string]any{"questionId": 1, "answer": "a"}, "lessonId"},
		{"no question", map[string]any{"lessonId": 1, "answer": "a"}, "questionId"},
		{"no answer", map[string]any{"lessonId": 1, "questionId": 1}, "answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/api/quiz/answer", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[errorResponse](t, rec).Error.Message, tt.field)
		})
	}
}

func TestQuizComplete_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/quiz/complete", map[string]any{"quizAttemptId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/quiz/complete", map[string]any{"totalQuestions": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewAnswer_NotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/review/answer", map[string]any{
		"reviewItemId": 999, "questionId": 1, "answer": "x", "quality": 3,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Error.Code)
}

func TestReviewDue(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/review/due?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/review/due", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestRitualLog(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/rituals/log", map[string]any{"shared": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/rituals/log", map[string]any{"ritualId": 2, "shared": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode[struct {
		OK     bool `json:"ok"`
		Reward struct {
			XPEarned     int      `json:"xpEarned"`
			Achievements []string `json:"achievements"`
		} `json:"reward"`
	}](t, rec)
	assert.True(t, out.OK)
	assert.Equal(t, 110, out.Reward.XPEarned)
	assert.Equal(t, []string{"first-hug"}, out.Reward.Achievements)
}

func TestPurchase(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/store/purchase", map[string]any{"itemId": "unicorn"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodPost, "/api/store/purchase", map[string]any{"itemId": "streak-freeze"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INSUFFICIENT_FUNDS", decode[errorResponse](t, rec).Error.Code)

	rec = ts.do(http.MethodPost, "/api/store/purchase", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/store", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	store := decode[struct {
		Items []shop.Item `json:"items"`
	}](t, rec)
	assert.Len(t, store.Items, 3)
}

func TestUserHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/summary", nil, "X-User-ID", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/summary", nil, "X-User-ID", "4242")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodPost, "/api/rituals/log", map[string]any{"ritualId": 2}, "X-User-ID", "999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorResponse](t, rec).Error.Code)

	rec = ts.do(http.MethodPost, "/api/quiz/answer", map[string]any{
		"lessonId": 1, "questionId": 1, "answer": "a", "quality": 3, "totalQuestions": 1,
	}, "X-User-ID", "999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[services.Summary](t, rec)

	rec = ts.do(http.MethodGet, "/api/summary", nil, "X-User-ID", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sum.UserID, decode[services.Summary](t, rec).UserID)
}

func TestInvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rituals/log", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decode[errorResponse](t, rec).Error.Code)
}
