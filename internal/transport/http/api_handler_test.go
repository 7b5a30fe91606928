package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamified-learning-service/internal/app"
	"gamified-learning-service/internal/auth"
	"gamified-learning-service/internal/domain"
	"gamified-learning-service/internal/infra/memory"
	"gamified-learning-service/internal/tutor"
	"gamified-learning-service/internal/videos"
)

func apiFixtureSubjects() []domain.Subject {
	questions := make([]domain.Question, 10)
	for i := range questions {
		questions[i] = domain.Question{
			Concept:       "Counting",
			Prompt:        "what comes next",
			Options:       []string{"1", "2", "3", "4"},
			CorrectOption: 1,
		}
	}
	return []domain.Subject{{
		ID:   "math",
		Name: "Mathematics",
		Lessons: []domain.Lesson{
			{ID: 1, Questions: questions},
			{ID: 2, Questions: questions},
		},
	}}
}

type fakeTutor struct {
	explanation tutor.Explanation
	err         error
}

func (f *fakeTutor) Explain(_ context.Context, topic, language string) (tutor.Explanation, error) {
	return f.explanation, f.err
}

type fakeVideos struct {
	results []videos.Video
	err     error
}

func (f *fakeVideos) Search(_ context.Context, query, language string, maxResults int) ([]videos.Video, error) {
	return f.results, f.err
}

type apiFixture struct {
	service *app.LearningService
	store   app.ResultStore
	tutor   *fakeTutor
	videos  *fakeVideos
	server  *httptest.Server
}

func newAPIFixture(t *testing.T, authSvc *auth.Service) *apiFixture {
	t.Helper()
	store := memory.NewResultStore()
	subjects := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(apiFixtureSubjects()), time.Minute)
	service := app.NewLearningService(subjects, store, app.Options{})

	ft := &fakeTutor{}
	fv := &fakeVideos{}
	mux := http.NewServeMux()
	NewAPIHandler(service, authSvc, ft, fv).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &apiFixture{service: service, store: store, tutor: ft, videos: fv, server: server}
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestListSubjectsHidesQuestionContent(t *testing.T) {
	fixture := newAPIFixture(t, nil)

	resp, err := http.Get(fixture.server.URL + "/api/subjects")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Subjects []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Lessons []struct {
				ID        int `json:"id"`
				Questions int `json:"questions"`
			} `json:"lessons"`
		} `json:"subjects"`
	}
	raw := json.RawMessage{}
	decodeBody(t, resp, &raw)
	if strings.Contains(string(raw), "correctOption") || strings.Contains(string(raw), "what comes next") {
		t.Fatalf("question content leaked: %s", raw)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Subjects) != 1 || body.Subjects[0].ID != "math" {
		t.Fatalf("unexpected subjects: %+v", body.Subjects)
	}
	if len(body.Subjects[0].Lessons) != 2 || body.Subjects[0].Lessons[0].Questions != 10 {
		t.Fatalf("unexpected lessons: %+v", body.Subjects[0].Lessons)
	}
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	svc := auth.NewService(tokens)
	hash, err := auth.HashSecret("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc.AddParent("Priya", hash)
	return svc
}

func TestDashboardRequiresBearerToken(t *testing.T) {
	fixture := newAPIFixture(t, newAuthService(t))

	resp, err := http.Get(fixture.server.URL + "/api/learners/Asha/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, fixture.server.URL+"/api/learners/Asha/stats", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", resp.StatusCode)
	}
}

func TestParentLoginThenStats(t *testing.T) {
	fixture := newAPIFixture(t, newAuthService(t))
	ctx := context.Background()

	for _, percent := range []int{60, 80} {
		err := fixture.store.AppendResult(ctx, "Asha", domain.QuizResult{
			LearnerName: "Asha", SubjectID: "math", LessonID: 1, ScorePercent: percent,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	resp, err := http.Post(fixture.server.URL+"/api/parent/login", "application/json",
		strings.NewReader(`{"name":"Priya","password":"hunter2"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 login, got %d", resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	if login.Token == "" {
		t.Fatalf("empty token")
	}

	req, _ := http.NewRequest(http.MethodGet, fixture.server.URL+"/api/learners/Asha/stats", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 stats, got %d", resp.StatusCode)
	}
	var stats domain.LearnerStats
	decodeBody(t, resp, &stats)
	if stats.TotalQuizzes != 2 || stats.AverageScorePercent != 70 || stats.HighestScorePercent != 80 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.SubjectScores["math"] != 80 {
		t.Fatalf("unexpected subject scores: %v", stats.SubjectScores)
	}
}

func TestParentLoginRejectsBadPassword(t *testing.T) {
	fixture := newAPIFixture(t, newAuthService(t))

	resp, err := http.Post(fixture.server.URL+"/api/parent/login", "application/json",
		strings.NewReader(`{"name":"Priya","password":"wrong"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestWeakConceptsEmptyIsList(t *testing.T) {
	fixture := newAPIFixture(t, nil)

	resp, err := http.Get(fixture.server.URL + "/api/learners/Asha/weak-concepts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	raw := json.RawMessage{}
	decodeBody(t, resp, &raw)
	if !strings.Contains(string(raw), `"weakConcepts":[]`) {
		t.Fatalf("expected empty list, got %s", raw)
	}
}

func TestExplainHappyPath(t *testing.T) {
	fixture := newAPIFixture(t, nil)
	fixture.tutor.explanation = tutor.Explanation{
		Explanation: "Counting means saying numbers in order.",
		KeyPoints:   []string{"start at one"},
		Tips:        "Count toys together.",
	}

	resp, err := http.Post(fixture.server.URL+"/api/tutor/explain", "application/json",
		strings.NewReader(`{"topic":"counting","language":"english"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out tutor.Explanation
	decodeBody(t, resp, &out)
	if out.Explanation != fixture.tutor.explanation.Explanation {
		t.Fatalf("unexpected explanation: %+v", out)
	}
}

func TestExplainUpstreamFailureIsInline(t *testing.T) {
	fixture := newAPIFixture(t, nil)
	fixture.tutor.err = fmt.Errorf("model overloaded")

	resp, err := http.Post(fixture.server.URL+"/api/tutor/explain", "application/json",
		strings.NewReader(`{"topic":"counting"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &out)
	if out.Error == "" {
		t.Fatalf("expected inline error message")
	}
}

func TestExplainRequiresTopic(t *testing.T) {
	fixture := newAPIFixture(t, nil)

	resp, err := http.Post(fixture.server.URL+"/api/tutor/explain", "application/json",
		strings.NewReader(`{"language":"english"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestVideoSearchDegradesToEmpty(t *testing.T) {
	fixture := newAPIFixture(t, nil)
	fixture.videos.err = fmt.Errorf("quota exceeded")

	resp, err := http.Get(fixture.server.URL + "/api/videos/search?q=moral+stories")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with empty list, got %d", resp.StatusCode)
	}
	raw := json.RawMessage{}
	decodeBody(t, resp, &raw)
	if !strings.Contains(string(raw), `"videos":[]`) {
		t.Fatalf("expected empty list, got %s", raw)
	}
}

func TestVideoSearchRequiresQuery(t *testing.T) {
	fixture := newAPIFixture(t, nil)

	resp, err := http.Get(fixture.server.URL + "/api/videos/search")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestVideoSearchReturnsResults(t *testing.T) {
	fixture := newAPIFixture(t, nil)
	fixture.videos.results = []videos.Video{{ID: "abc123", Title: "The Honest Woodcutter"}}

	resp, err := http.Get(fixture.server.URL + "/api/videos/search?q=stories&language=hindi")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var out struct {
		Videos []videos.Video `json:"videos"`
	}
	decodeBody(t, resp, &out)
	if len(out.Videos) != 1 || out.Videos[0].ID != "abc123" {
		t.Fatalf("unexpected videos: %+v", out.Videos)
	}
}
