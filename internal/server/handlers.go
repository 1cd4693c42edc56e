package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/career-advisor/internal/resume"
	"github.com/jonathan/career-advisor/internal/types"
	"go.uber.org/zap"
)

// maxJSONBody bounds JSON request bodies
const maxJSONBody = 1 << 20

// ChatRequest is the body of POST /api/ai/chat
type ChatRequest struct {
	Message     string                `json:"message" validate:"required,max=4000"`
	SessionID   string                `json:"sessionId" validate:"required,max=128"`
	UserProfile *types.PartialProfile `json:"userProfile,omitempty"`
}

// RecommendationsRequest is the body of POST /api/ai/recommendations
type RecommendationsRequest struct {
	UserProfile *types.PartialProfile `json:"userProfile,omitempty"`
	SessionID   string                `json:"sessionId,omitempty" validate:"max=128"`
}

// ResourcesRequest is the body of POST /api/ai/resources
type ResourcesRequest struct {
	JobTitle string   `json:"jobTitle,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// MentorshipRequest is the body of POST /api/ai/mentorship
type MentorshipRequest struct {
	JobTitles []string `json:"jobTitles,omitempty"`
}

// decodeJSON decodes and validates a JSON request body
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrPayloadTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	return validateRequest(dst)
}

// handleChat runs one conversation turn
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Failed to generate response")
		return
	}

	result, err := s.engine.PostChatMessage(r.Context(), req.SessionID, req.Message, req.UserProfile)
	if err != nil {
		s.handleError(w, r, err, "Failed to generate response")
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleRecommendations builds recommendations from the session and profile
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Failed to get recommendations")
		return
	}

	bundle, err := s.engine.GetRecommendations(r.Context(), req.SessionID, req.UserProfile)
	if err != nil {
		s.handleError(w, r, err, "Failed to get recommendations")
		return
	}

	s.jsonResponse(w, http.StatusOK, bundle)
}

// handleSearchJobs searches the job catalog
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := types.SearchFilters{
		Category: q.Get("category"),
		Level:    q.Get("level"),
		Skills:   splitList(q.Get("skills")),
	}

	jobs := s.engine.SearchJobs(q.Get("query"), filters)
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleResources returns learning resources for a job title or skills
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	var req ResourcesRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Failed to get resources")
		return
	}

	resources := s.engine.LearningResources(req.JobTitle, req.Skills)
	s.jsonResponse(w, http.StatusOK, map[string]any{"resources": resources})
}

// handleMentorship returns mentorship recommendations for job titles
func (s *Server) handleMentorship(w http.ResponseWriter, r *http.Request) {
	var req MentorshipRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Failed to get mentorship recommendations")
		return
	}

	mentors := s.engine.MentorshipRecommendations(req.JobTitles)
	s.jsonResponse(w, http.StatusOK, map[string]any{"mentors": mentors})
}

// handlePlatforms lists mentorship platforms, optionally by category
func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms := s.engine.PlatformsByCategory(r.URL.Query().Get("category"))
	s.jsonResponse(w, http.StatusOK, map[string]any{"platforms": platforms})
}

// handleCreateSession starts an empty session with a server-minted id
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.engine.CreateSession(r.Context())
	if err != nil {
		s.handleError(w, r, err, "Failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// handleSessionHistory returns the messages of a session
func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := s.engine.SessionHistory(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		s.handleError(w, r, err, "Failed to get session")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"messages": messages})
}

// handleClearSession deletes a session
func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearSession(r.Context(), r.PathValue("sessionId")); err != nil {
		s.handleError(w, r, err, "Failed to clear session")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Session cleared successfully"})
}

// handleAnalyzeCV analyzes an uploaded résumé sent as multipart field "cv"
func (s *Server) handleAnalyzeCV(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxUploadBytes
	// multipart framing adds a little on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)

	file, header, err := r.FormFile("cv")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.handleError(w, r, &ErrPayloadTooLarge{Limit: limit}, "CV analysis failed")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			s.errorResponse(w, http.StatusBadRequest, "No CV uploaded")
		default:
			s.handleError(w, r, &ErrValidation{Field: "cv", Message: "Invalid upload: " + err.Error()}, "CV analysis failed")
		}
		return
	}
	defer func() { _ = file.Close() }()

	data, err := readUpload(file, limit)
	if err != nil {
		s.handleError(w, r, err, "CV analysis failed")
		return
	}

	mime := resume.DetectType(header.Filename, header.Header.Get("Content-Type"))
	if mime == "" {
		s.handleError(w, r, fmt.Errorf("%w: %s", resume.ErrUnsupportedType, header.Filename), "CV analysis failed")
		return
	}

	report, err := s.engine.AnalyzeCV(mime, data)
	if err != nil {
		s.handleError(w, r, err, "CV analysis failed")
		return
	}

	s.metrics.CVAnalyses.WithLabelValues(mime).Inc()
	s.logger.Debug("cv analyzed",
		zap.String("type", mime),
		zap.Int("keywords", len(report.Keywords)),
		zap.Int("jobs", len(report.RecommendedJobs)))
	s.jsonResponse(w, http.StatusOK, report)
}

// readUpload reads an uploaded file, reporting oversize input as ErrPayloadTooLarge
func readUpload(r io.Reader, limit int64) ([]byte, error) {
	data, err := resume.ReadAll(r, limit)
	if errors.Is(err, resume.ErrTooLarge) {
		return nil, &ErrPayloadTooLarge{Limit: limit}
	}
	return data, err
}

// splitList splits a comma separated query value, dropping blanks
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
