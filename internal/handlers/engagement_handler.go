package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/karim-d/VentureLinkBack/internal/models"
)

type engagementApplicationService interface {
	AddFavorite(ctx context.Context, actorID int64, listingID int64) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, actorID int64, listingID int64) error
	ApplyToJob(ctx context.Context, actorID int64, jobID int64, coverNote *string) (*models.JobApplication, error)
}

type EngagementHandler struct {
	service engagementApplicationService
}

type addFavoriteRequest struct {
	ListingID int64 `json:"listing_id" validate:"required,gt=0"`
}

type applyToJobRequest struct {
	CoverNote *string `json:"cover_note" validate:"omitempty,max=2000"`
}

func NewEngagementHandler(service engagementApplicationService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) AddFavorite(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req addFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	favorite, err := h.service.AddFavorite(c.Context(), actorID, req.ListingID)
	if err != nil {
		return mapChatError(c, err)
	}

	if favorite == nil {
		// Already favorited; idempotent success.
		return c.JSON(fiber.Map{"success": true})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"favorite": favorite})
}

func (h *EngagementHandler) RemoveFavorite(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	listingID, err := strconv.ParseInt(c.Params("listingId"), 10, 64)
	if err != nil || listingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	if err := h.service.RemoveFavorite(c.Context(), actorID, listingID); err != nil {
		return mapChatError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *EngagementHandler) ApplyToJob(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req applyToJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	application, err := h.service.ApplyToJob(c.Context(), actorID, jobID, req.CoverNote)
	if err != nil {
		return mapChatError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": application})
}
