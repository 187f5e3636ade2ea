package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karim-d/VentureLinkBack/internal/config"
	"github.com/karim-d/VentureLinkBack/internal/handlers"
	"github.com/karim-d/VentureLinkBack/internal/middleware"
	"github.com/karim-d/VentureLinkBack/internal/repository"
	"github.com/karim-d/VentureLinkBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	jobRepo := repository.NewJobRepository(db)
	investorProfileRepo := repository.NewInvestorProfileRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	notificationService := services.NewNotificationService(notificationRepo)
	chatService := services.NewChatService(
		db,
		conversationRepo,
		messageRepo,
		listingRepo,
		jobRepo,
		userRepo,
		notificationService,
	)
	matchingService := services.NewMatchingService(investorProfileRepo, listingRepo, jobRepo)
	engagementService := services.NewEngagementService(
		favoriteRepo,
		applicationRepo,
		listingRepo,
		jobRepo,
		userRepo,
		notificationService,
	)

	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	matchingHandler := handlers.NewMatchingHandler(matchingService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	streamHandler := handlers.NewStreamHandler(
		chatService,
		notificationService,
		cfg.MessagePollInterval,
		cfg.NotificationPollInterval,
	)

	api := app.Group("/api")
	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	conversations := authProtected.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Post("", chatHandler.StartConversation)
	conversations.Get("/:id/messages", chatHandler.GetMessages)
	conversations.Post("/:id/messages", chatHandler.SendMessage)
	conversations.Post("/:id/read", chatHandler.MarkConversationRead)
	conversations.Get("/:id/stream", streamHandler.StreamConversation)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.ListNotifications)
	notifications.Get("/stream", streamHandler.StreamNotifications)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	matches := authProtected.Group("/matches")
	matches.Get("/listings", matchingHandler.MatchedListings)
	matches.Get("/jobs", matchingHandler.MatchedJobs)

	favorites := authProtected.Group("/favorites")
	favorites.Post("", engagementHandler.AddFavorite)
	favorites.Delete("/:listingId", engagementHandler.RemoveFavorite)

	authProtected.Post("/jobs/:id/applications", engagementHandler.ApplyToJob)
}
