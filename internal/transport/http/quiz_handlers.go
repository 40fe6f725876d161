package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/okazakov/boardwire-server/internal/catalog"
)

// QuizHandlers provides HTTP handlers for the quiz catalog endpoints.
type QuizHandlers struct {
	store catalog.Store
	log   *zerolog.Logger
}

// NewQuizHandlers creates a new quiz handlers instance.
func NewQuizHandlers(store catalog.Store, logger *zerolog.Logger) *QuizHandlers {
	return &QuizHandlers{
		store: store,
		log:   logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse mirrors the file-mode document shape.
type ListResponse struct {
	Quizzes []catalog.Quiz `json:"quizzes"`
}

// HealthResponse is the liveness check body.
type HealthResponse struct {
	OK   bool   `json:"ok"`
	TS   int64  `json:"ts"`
	Mode string `json:"mode"`
}

// Health handles the liveness check.
// GET /api/health
func (h *QuizHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		OK:   true,
		TS:   time.Now().UnixMilli(),
		Mode: string(h.store.Mode()),
	})
}

// List handles listing all quizzes.
// GET /api/quizzes
func (h *QuizHandlers) List(c *gin.Context) {
	quizzes, err := h.store.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list quizzes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if quizzes == nil {
		quizzes = []catalog.Quiz{}
	}
	c.JSON(http.StatusOK, ListResponse{Quizzes: quizzes})
}

// Get handles fetching a single quiz by id.
// GET /api/quizzes/:id
func (h *QuizHandlers) Get(c *gin.Context) {
	id := c.Param("id")

	quiz, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "quiz not found"})
			return
		}
		h.log.Error().Err(err).Str("quiz_id", id).Msg("failed to get quiz")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Create handles storing a new quiz. Id collisions are not checked; callers
// may create duplicates and Get serves the first match.
// POST /api/quizzes
func (h *QuizHandlers) Create(c *gin.Context) {
	var quiz catalog.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		h.log.Debug().Err(err).Msg("invalid create quiz request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := quiz.Validate(); err != nil {
		h.log.Debug().Err(err).Str("quiz_id", quiz.ID).Msg("quiz failed validation")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stored, err := h.store.Create(c.Request.Context(), quiz)
	if err != nil {
		h.log.Error().Err(err).Str("quiz_id", quiz.ID).Msg("failed to create quiz")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("quiz_id", stored.ID).Msg("quiz created")
	c.JSON(http.StatusCreated, stored)
}
