package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hakseup/topik-api/internal/api/shared"
	"github.com/hakseup/topik-api/internal/domain"
	"github.com/hakseup/topik-api/internal/platform/logger"
	"github.com/hakseup/topik-api/internal/service/practice"
	"github.com/hakseup/topik-api/internal/session"
)

// PracticeHandler handles practice-related HTTP requests
type PracticeHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(
	practiceService practice.Service,
	logger *slog.Logger,
) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for PracticeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PracticeHandler")
	}

	return &PracticeHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// Grade handles POST /grade requests
// It grades one item for the request's learner and returns the updated
// mastery record.
func (h *PracticeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner := shared.GetLearner(r.Context())

	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	surface := req.Surface
	if surface == "" {
		surface = string(session.ModeFlashcard)
	}

	record, err := h.practiceService.Grade(
		r.Context(),
		learner,
		req.ItemKey,
		domain.Quality(req.Quality),
		surface,
	)

	// A grading that could not be saved is still a grading: return the
	// record and flag the lost durability.
	if err != nil && errors.Is(err, practice.ErrRecordNotPersisted) {
		log.Warn("grading not persisted",
			slog.String("learner", learner),
			slog.String("item_key", req.ItemKey))
		shared.RespondWithJSON(w, r, http.StatusOK, GradeResponse{Record: record, Persisted: false})
		return
	}
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to grade item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("graded item",
		slog.String("learner", learner),
		slog.String("item_key", req.ItemKey),
		slog.String("quality", req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, GradeResponse{Record: record, Persisted: true})
}

// Due handles GET /due requests
// It returns the items due for review today in the requested level.
func (h *PracticeHandler) Due(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	level, ok := levelParam(w, r)
	if !ok {
		return
	}

	items, err := h.practiceService.DueItems(r.Context(), learner, level)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to load due items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Stats handles GET /stats requests
// It returns the mastery tally for the requested level.
func (h *PracticeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	level, ok := levelParam(w, r)
	if !ok {
		return
	}

	tally, err := h.practiceService.Stats(r.Context(), learner, level)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to load stats", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tally)
}

// StartSession handles POST /sessions requests
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner := shared.GetLearner(r.Context())

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	policy := session.Policy{
		Mode:      session.Mode(req.Mode),
		Direction: session.Direction(req.Direction),
		Category:  req.Category,
		Count:     req.Count,
		DueOnly:   req.DueOnly,
	}

	view, err := h.practiceService.StartSession(r.Context(), learner, req.Level, policy)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to start session", err)
		return
	}

	log.Debug("session started",
		slog.String("learner", learner),
		slog.String("mode", string(view.Mode)),
		slog.Int("level", req.Level))
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /sessions/{mode} requests
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	view, err := h.practiceService.Session(r.Context(), learner, mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Advance handles POST /sessions/{mode}/advance requests
func (h *PracticeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	// An empty body means forward.
	var req AdvanceRequest
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	view, err := h.practiceService.Advance(r.Context(), learner, mode, req.Back)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Shuffle handles POST /sessions/{mode}/shuffle requests
func (h *PracticeHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	view, err := h.practiceService.ShuffleSession(r.Context(), learner, mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GradeCurrent handles POST /sessions/{mode}/grade requests
// It grades the current flashcard and advances the session.
func (h *PracticeHandler) GradeCurrent(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	var req SessionGradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	view, err := h.practiceService.GradeCurrent(r.Context(), learner, mode, domain.Quality(req.Quality))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SubmitAnswer handles POST /sessions/{mode}/answer requests
// It checks a typed answer, grades the current item, and advances.
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.practiceService.SubmitAnswer(r.Context(), learner, mode, req.Answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// EndSession handles DELETE /sessions/{mode} requests
func (h *PracticeHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	learner := shared.GetLearner(r.Context())

	mode, ok := modeParam(w, r)
	if !ok {
		return
	}

	if err := h.practiceService.EndSession(r.Context(), learner, mode); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// levelParam parses the required level query parameter, responding with
// 400 on failure.
func levelParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("level")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Level is required")
		return 0, false
	}

	level, err := strconv.Atoi(raw)
	if err != nil || level <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid level")
		return 0, false
	}
	return level, true
}

// modeParam parses the mode URL parameter, responding with 400 on an
// unknown mode.
func modeParam(w http.ResponseWriter, r *http.Request) (session.Mode, bool) {
	mode := session.Mode(chi.URLParam(r, "mode"))
	switch mode {
	case session.ModeFlashcard, session.ModeQuiz, session.ModeSentence:
		return mode, true
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session mode")
		return "", false
	}
}
