package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/karim-d/VentureLinkBack/internal/models"
)

type matchingApplicationService interface {
	MatchListings(ctx context.Context, userID int64, limit int) ([]models.ListingWithScore, error)
	MatchJobs(ctx context.Context, userID int64, limit int) ([]models.JobWithScore, error)
}

type MatchingHandler struct {
	service matchingApplicationService
}

func NewMatchingHandler(service matchingApplicationService) *MatchingHandler {
	return &MatchingHandler{service: service}
}

func (h *MatchingHandler) MatchedListings(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), 0)
	matches, err := h.service.MatchListings(c.Context(), actorID, limit)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"matches": matches})
}

func (h *MatchingHandler) MatchedJobs(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), 0)
	matches, err := h.service.MatchJobs(c.Context(), actorID, limit)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"matches": matches})
}
