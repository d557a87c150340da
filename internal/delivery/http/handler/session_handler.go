package handler

import (
	"errors"
	"time"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SessionHandler struct {
	uc usecase.SessionUsecase
}

type createSessionRequest struct {
	RequestID       string    `json:"request_id" validate:"required,uuid4"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1,max=480"`
	Location        string    `json:"location" validate:"required,oneof=online in-person"`
	Notes           string    `json:"notes" validate:"max=1000"`
}

type updateSessionRequest struct {
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	Location        *string    `json:"location" validate:"omitempty,oneof=online in-person"`
	Notes           *string    `json:"notes" validate:"omitempty,max=1000"`
	Status          *string    `json:"status" validate:"omitempty,oneof=cancelled"`
}

type feedbackRequest struct {
	Attended *bool   `json:"attended"`
	Feedback *string `json:"feedback" validate:"omitempty,max=1000"`
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/sessions")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Patch("/:session_id", h.Update)
	grp.Patch("/:session_id/feedback", h.Feedback)
}

func (h *SessionHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request id", nil, err)
	}

	item, err := h.uc.CreateSession(c.Context(), userID, usecase.CreateSessionInput{
		RequestID:       requestID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, item)
}

func (h *SessionHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListSessions(c.Context(), userID, c.Query("status"))
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SessionHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}

	var req updateSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.UpdateSession(c.Context(), userID, sessionID, usecase.UpdateSessionInput{
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *SessionHandler) Feedback(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}

	var req feedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.SubmitFeedback(c.Context(), userID, sessionID, usecase.FeedbackInput{
		Attended: req.Attended,
		Feedback: req.Feedback,
		Rating:   req.Rating,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func mapSessionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pairing request not found", nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotAccepted):
		return middleware.NewAppError(fiber.StatusBadRequest, "Request is not accepted", nil, err)
	case errors.Is(err, usecase.ErrSessionExists):
		return middleware.NewAppError(fiber.StatusConflict, "A session already exists for this request", nil, err)
	case errors.Is(err, usecase.ErrSessionCancelled):
		return middleware.NewAppError(fiber.StatusConflict, "Session is cancelled", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
