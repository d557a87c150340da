package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"
	ucuser "skill-swap/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	FullName    *string  `json:"full_name" validate:"omitempty,max=100"`
	TeachSkills []string `json:"teach_skills" validate:"omitempty,max=5"`
	LearnSkills []string `json:"learn_skills" validate:"omitempty,max=5"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/:user_id", h.GetByID)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(prof))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	prof, err := h.uc.UpdateProfile(c.Context(), userID, ucuser.UpdateProfileInput{
		FullName:    req.FullName,
		TeachSkills: req.TeachSkills,
		LearnSkills: req.LearnSkills,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(prof))
}

func (h *UserHandler) GetByID(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	prof, err := h.uc.GetProfile(c.Context(), targetID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(prof))
}

func toProfileResponse(p ucuser.Profile) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:          p.ID,
		Username:    p.Username,
		FullName:    p.FullName,
		TeachSkills: p.TeachSkills,
		LearnSkills: p.LearnSkills,
		CreatedAt:   p.CreatedAt,
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrTooManySkills):
		return middleware.NewAppError(fiber.StatusBadRequest, "Too many skills", nil, err)
	case errors.Is(err, ucuser.ErrDuplicateSkill):
		return middleware.NewAppError(fiber.StatusBadRequest, "Duplicate skill", nil, err)
	case errors.Is(err, ucuser.ErrSkillOverlap):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill cannot be in both sets", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
