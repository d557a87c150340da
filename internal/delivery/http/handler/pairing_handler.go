package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PairingHandler struct {
	uc usecase.PairingUsecase
}

type createRequestRequest struct {
	RecipientID string   `json:"recipient_id" validate:"required,uuid4"`
	TeachSkills []string `json:"teach_skills" validate:"required,min=1,max=5"`
	LearnSkills []string `json:"learn_skills" validate:"required,min=1,max=5"`
	Message     string   `json:"message" validate:"max=500"`
}

type updateRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined cancelled"`
}

func NewPairingHandler(uc usecase.PairingUsecase) *PairingHandler {
	return &PairingHandler{uc: uc}
}

func (h *PairingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/pairing-requests")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Patch("/:request_id", h.UpdateStatus)
}

func (h *PairingHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid recipient id", nil, err)
	}

	item, err := h.uc.CreateRequest(c.Context(), userID, usecase.CreateRequestInput{
		RecipientID: recipientID,
		TeachSkills: req.TeachSkills,
		LearnSkills: req.LearnSkills,
		Message:     req.Message,
	})
	if err != nil {
		return mapPairingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, item)
}

func (h *PairingHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListRequests(c.Context(), userID, usecase.ListRequestsInput{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	})
	if err != nil {
		return mapPairingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *PairingHandler) UpdateStatus(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("request_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request id", nil, err)
	}

	var req updateRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.UpdateStatus(c.Context(), userID, requestID, req.Status)
	if err != nil {
		return mapPairingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func mapPairingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfRequest):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot send a request to yourself", nil, err)
	case errors.Is(err, usecase.ErrRecipientNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Recipient not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pairing request not found", nil, err)
	case errors.Is(err, usecase.ErrPendingExists):
		return middleware.NewAppError(fiber.StatusConflict, "A pending request to this user already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrAlreadyResolved):
		// A terminal request accepts no further transitions, from either side.
		return middleware.NewAppError(fiber.StatusForbidden, "Request already resolved", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
