package handler

import (
	"errors"
	"strconv"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Get("/suggested", h.GetSuggested)
}

func (h *MatchHandler) GetSuggested(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	matches, err := h.uc.SuggestedMatches(c.Context(), userID, limit, offset)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := make([]dto.SuggestedMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.SuggestedMatchResponse{
			User: dto.MatchedUserResponse{
				ID:       m.User.ID.String(),
				Username: m.User.Username,
				FullName: m.User.FullName,
			},
			YouCanTeachThem:      m.YouCanTeachThem,
			TheyCanTeachYou:      m.TheyCanTeachYou,
			MatchScore:           m.MatchScore,
			TotalSkillsExchanged: m.TotalSkillsExchanged,
			MinSkillsExchanged:   m.MinSkillsExchanged,
			Tier:                 m.Tier,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
