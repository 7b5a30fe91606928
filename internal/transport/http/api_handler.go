package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"gamified-learning-service/internal/app"
	"gamified-learning-service/internal/auth"
	"gamified-learning-service/internal/domain"
	"gamified-learning-service/internal/tutor"
	"gamified-learning-service/internal/videos"
)

// TutorClient is what the API needs from the AI tutoring wrapper.
type TutorClient interface {
	Explain(ctx context.Context, topic, language string) (tutor.Explanation, error)
}

// VideoClient is what the API needs from the video-search wrapper.
type VideoClient interface {
	Search(ctx context.Context, query, language string, maxResults int) ([]videos.Video, error)
}

// APIHandler serves the JSON endpoints: catalogue browsing, the parent
// dashboard, and the two external-service wrappers.
type APIHandler struct {
	service *app.LearningService
	auth    *auth.Service
	tutor   TutorClient
	videos  VideoClient
}

func NewAPIHandler(service *app.LearningService, authSvc *auth.Service, tutorClient TutorClient, videoClient VideoClient) *APIHandler {
	return &APIHandler{service: service, auth: authSvc, tutor: tutorClient, videos: videoClient}
}

// Register mounts all routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/subjects", h.listSubjects)
	mux.HandleFunc("POST /api/parent/login", h.parentLogin)
	mux.HandleFunc("GET /api/learners/{name}/stats", h.requireParent(h.learnerStats))
	mux.HandleFunc("GET /api/learners/{name}/history", h.requireParent(h.learnerHistory))
	mux.HandleFunc("GET /api/learners/{name}/weak-concepts", h.requireParent(h.learnerWeakConcepts))
	mux.HandleFunc("POST /api/tutor/explain", h.explain)
	mux.HandleFunc("GET /api/videos/search", h.searchVideos)
}

type subjectView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Lessons []lessonView `json:"lessons"`
}

type lessonView struct {
	ID        int `json:"id"`
	Questions int `json:"questions"`
}

// listSubjects returns the catalogue for selection screens. Question bodies,
// and in particular correct answers, never leave the server here.
func (h *APIHandler) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalogue unavailable")
		return
	}
	views := make([]subjectView, 0, len(subjects))
	for _, subject := range subjects {
		view := subjectView{ID: subject.ID, Name: subject.Name}
		for _, lesson := range subject.Lessons {
			view.Lessons = append(view.Lessons, lessonView{ID: lesson.ID, Questions: len(lesson.Questions)})
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": views})
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *APIHandler) parentLogin(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeError(w, http.StatusNotImplemented, "authentication not configured")
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login payload")
		return
	}
	token, err := h.auth.ParentLogin(req.Name, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// requireParent enforces a bearer token when auth is configured.
func (h *APIHandler) requireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.auth != nil {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if _, err := h.auth.VerifyToken(raw); err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
		}
		next(w, r)
	}
}

func (h *APIHandler) learnerStats(w http.ResponseWriter, r *http.Request) {
	learner := r.PathValue("name")
	stats, err := h.service.ComputeStats(r.Context(), learner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *APIHandler) learnerHistory(w http.ResponseWriter, r *http.Request) {
	learner := r.PathValue("name")
	results, err := h.service.LearnerHistory(r.Context(), learner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if results == nil {
		results = []domain.QuizResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *APIHandler) learnerWeakConcepts(w http.ResponseWriter, r *http.Request) {
	learner := r.PathValue("name")
	concepts, err := h.service.LearnerWeakConcepts(r.Context(), learner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "weak concepts unavailable")
		return
	}
	if concepts == nil {
		concepts = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"weakConcepts": concepts})
}

type explainRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language"`
}

// explain forwards a tutoring question. Upstream failures surface as an
// inline message; they never touch quiz state.
func (h *APIHandler) explain(w http.ResponseWriter, r *http.Request) {
	if h.tutor == nil {
		writeError(w, http.StatusNotImplemented, "tutor not configured")
		return
	}
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	explanation, err := h.tutor.Explain(r.Context(), req.Topic, req.Language)
	if err != nil {
		log.Printf("[TUTOR] explain %q: %v", req.Topic, err)
		writeError(w, http.StatusBadGateway, "the tutor is unavailable right now, please try again")
		return
	}
	writeJSON(w, http.StatusOK, explanation)
}

// searchVideos degrades to an empty list on upstream failure, matching the
// best-effort contract of the stories browser.
func (h *APIHandler) searchVideos(w http.ResponseWriter, r *http.Request) {
	if h.videos == nil {
		writeError(w, http.StatusNotImplemented, "video search not configured")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	results, err := h.videos.Search(r.Context(), query, r.URL.Query().Get("language"), 0)
	if err != nil {
		log.Printf("[VIDEOS] search %q: %v", query, err)
		results = nil
	}
	if results == nil {
		results = []videos.Video{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": results})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
