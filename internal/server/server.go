package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/config"
	"parastaran.ir/nursesforum/internal/handler"
	"parastaran.ir/nursesforum/internal/middleware"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/notifier"
	"parastaran.ir/nursesforum/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	cron        *cron.Cron
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	fileStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	followRepo := repository.NewFollowRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	mentorshipRepo := repository.NewMentorshipRepository(db)
	eventRepo := repository.NewEventRepository(db)
	fileRepo := repository.NewFileRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	policyUpdateRepo := repository.NewPolicyUpdateRepository(db)
	equipmentReviewRepo := repository.NewEquipmentReviewRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)

	authSvc := service.NewAuthService(userRepo, redisClient, notifier.NewMockSMS(), notifier.NewMockEmail(), cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	categorySvc := service.NewCategoryService(categoryRepo)
	categoryHandler := handler.NewCategoryHandler(categorySvc)

	threadSvc := service.NewThreadService(threadRepo, categoryRepo, redisClient, searchSvc, cfg.RateLimitThread)
	threadHandler := handler.NewThreadHandler(threadSvc, searchSvc, userRepo)

	commentSvc := service.NewCommentService(commentRepo, threadRepo, followRepo, notificationSvc)
	commentHandler := handler.NewCommentHandler(commentSvc, userRepo)

	reactionSvc := service.NewReactionService(reactionRepo, threadRepo, commentRepo)
	reactionHandler := handler.NewReactionHandler(reactionSvc)

	followSvc := service.NewFollowService(followRepo, threadRepo, categoryRepo, userRepo, notificationSvc)
	followHandler := handler.NewFollowHandler(followSvc)

	messagingSvc := service.NewMessagingService(conversationRepo, userRepo, notificationSvc)
	messagingHandler := handler.NewMessagingHandler(messagingSvc)

	shiftSvc := service.NewShiftService(shiftRepo, notificationSvc)
	shiftHandler := handler.NewShiftHandler(shiftSvc)

	mentorshipSvc := service.NewMentorshipService(mentorshipRepo, userRepo, notificationSvc)
	mentorshipHandler := handler.NewMentorshipHandler(mentorshipSvc)

	eventSvc := service.NewEventService(eventRepo)
	eventHandler := handler.NewEventHandler(eventSvc, userRepo)

	fileSvc := service.NewFileService(fileRepo, fileStorage)
	fileHandler := handler.NewFileHandler(fileSvc, userRepo)

	reportSvc := service.NewReportService(reportRepo, userRepo)
	reportHandler := handler.NewReportHandler(reportSvc)

	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	policyUpdateSvc := service.NewPolicyUpdateService(policyUpdateRepo)
	policyUpdateHandler := handler.NewPolicyUpdateHandler(policyUpdateSvc, userRepo)

	equipmentReviewSvc := service.NewEquipmentReviewService(equipmentReviewRepo)
	equipmentReviewHandler := handler.NewEquipmentReviewHandler(equipmentReviewSvc, userRepo)

	resourceSvc := service.NewResourceService(resourceRepo, threadRepo)
	resourceHandler := handler.NewResourceHandler(resourceSvc, userRepo)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("5 0 * * *", func() {
		expired, err := shiftSvc.ExpireOpenShifts(context.Background())
		if err != nil {
			log.Printf("failed to expire open shifts: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("expired %d open shifts", expired)
		}
	}); err != nil {
		log.Fatalf("failed to schedule shift expiry job: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)
	policies := middleware.NewPolicySet(userRepo, threadRepo)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/otp/request", authHandler.RequestOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
		auth.POST("/magic-link/request", authHandler.RequestMagicLink)
		auth.POST("/magic-link/verify", authHandler.VerifyMagicLink)
	}

	// category and thread reads are open to visitors, as on the public site
	public := api.Group("")
	{
		public.GET("/category", categoryHandler.GetAll)
		public.GET("/category/all", categoryHandler.GetAllFlat)
		public.GET("/category/:id", categoryHandler.GetByID)
		public.GET("/category/slug/:slug", categoryHandler.GetBySlug)

		public.GET("/thread", threadHandler.GetAll)
		public.GET("/thread/:id", threadHandler.GetByID)
		public.GET("/thread/:id/comments", commentHandler.GetByThread)

		public.GET("/search/threads", threadHandler.Search)

		public.GET("/policy-updates", policyUpdateHandler.GetAll)
		public.GET("/policy-updates/:id", policyUpdateHandler.GetByID)

		public.GET("/equipment-reviews", equipmentReviewHandler.GetAll)
		public.GET("/equipment-reviews/:id", equipmentReviewHandler.GetByID)

		public.GET("/resources", resourceHandler.GetAll)
		public.GET("/resources/tags", resourceHandler.Tags)
		public.GET("/resources/:id", resourceHandler.GetByThread)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/profile", authHandler.UpdateProfile)

		category := protected.Group("/category")
		{
			category.POST("/:id/follow", followHandler.FollowCategory)
			category.DELETE("/:id/follow", followHandler.UnfollowCategory)

			adminCategory := category.Group("")
			adminCategory.Use(authMiddleware.RequireAdmin())
			{
				adminCategory.POST("", categoryHandler.Create)
				adminCategory.PUT("/:id", categoryHandler.Update)
				adminCategory.DELETE("/:id", categoryHandler.Delete)
			}
		}

		thread := protected.Group("/thread")
		{
			thread.POST("", threadHandler.Create)
			thread.PUT("/:id", middleware.Enforce(middleware.All(policies.ThreadExists(), middleware.Any(policies.ThreadOwner(), policies.Admin()))), threadHandler.Update)
			thread.DELETE("/:id", middleware.Enforce(middleware.All(policies.ThreadExists(), middleware.Any(policies.ThreadOwner(), policies.Admin()))), threadHandler.Delete)
			thread.PATCH("/:id/pin", middleware.Enforce(middleware.All(policies.Admin(), policies.ThreadExists())), threadHandler.TogglePin)
			thread.PATCH("/:id/lock", middleware.Enforce(middleware.All(policies.Admin(), policies.ThreadExists())), threadHandler.ToggleLock)

			thread.POST("/:id/comments", commentHandler.Create)

			thread.POST("/:id/reactions", reactionHandler.ReactToThread)
			thread.DELETE("/:id/reactions", reactionHandler.UnreactToThread)

			thread.POST("/:id/follow", followHandler.FollowThread)
			thread.DELETE("/:id/follow", followHandler.UnfollowThread)
		}

		comment := protected.Group("/comment")
		{
			comment.PUT("/:id", commentHandler.Update)
			comment.DELETE("/:id", commentHandler.Delete)
			comment.POST("/:id/reactions", reactionHandler.ReactToComment)
			comment.DELETE("/:id/reactions", reactionHandler.UnreactToComment)
		}

		protected.GET("/me/followed-threads", followHandler.FollowedThreads)

		user := protected.Group("/user")
		{
			user.POST("/:id/follow", followHandler.FollowUser)
			user.DELETE("/:id/follow", followHandler.UnfollowUser)
			user.GET("/:id/followers", followHandler.Followers)
			user.GET("/:id/following", followHandler.Following)
		}

		conversations := protected.Group("/conversations")
		{
			conversations.POST("", messagingHandler.CreateConversation)
			conversations.GET("", messagingHandler.GetConversations)
			conversations.GET("/:id", messagingHandler.GetConversation)
			conversations.DELETE("/:id", messagingHandler.LeaveConversation)
			conversations.POST("/:id/messages", messagingHandler.SendMessage)
			conversations.GET("/:id/messages", messagingHandler.GetMessages)
			conversations.PUT("/:id/messages/:messageId", messagingHandler.EditMessage)
			conversations.DELETE("/:id/messages/:messageId", messagingHandler.DeleteMessage)
			conversations.PUT("/:id/messages/:messageId/read", messagingHandler.MarkRead)
		}

		shifts := protected.Group("/shifts")
		{
			shifts.POST("", shiftHandler.Create)
			shifts.GET("", shiftHandler.GetAll)
			shifts.GET("/:id", shiftHandler.GetByID)
			shifts.PUT("/:id", shiftHandler.Update)
			shifts.DELETE("/:id", shiftHandler.Cancel)
			shifts.POST("/:id/apply", shiftHandler.Apply)
			shifts.GET("/:id/applications", shiftHandler.Applications)
			shifts.PUT("/applications/:applicationId", shiftHandler.ReviewApplication)
		}

		mentorship := protected.Group("/mentorship")
		{
			mentorship.POST("", mentorshipHandler.Request)
			mentorship.GET("/me", mentorshipHandler.GetMine)
			mentorship.GET("/mentors", mentorshipHandler.Mentors)
			mentorship.GET("/:id", mentorshipHandler.GetByID)
			mentorship.PUT("/:id/accept", mentorshipHandler.Accept)
			mentorship.PUT("/:id/reject", mentorshipHandler.Reject)
			mentorship.PUT("/:id/complete", mentorshipHandler.Complete)
		}

		events := protected.Group("/events")
		{
			events.POST("", eventHandler.Create)
			events.GET("", eventHandler.GetAll)
			events.GET("/:id", eventHandler.GetByID)
			events.PUT("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)
			events.POST("/:id/register", eventHandler.Register)
			events.DELETE("/:id/register", eventHandler.CancelRegistration)
			events.GET("/:id/participants", eventHandler.Participants)
			events.PUT("/:id/participants/:userId/attended", eventHandler.MarkAttended)
		}

		files := protected.Group("/files")
		{
			files.POST("", fileHandler.Upload)
			files.GET("/me", fileHandler.GetMine)
			files.GET("/:id", fileHandler.GetByID)
			files.DELETE("/:id", fileHandler.Delete)
			files.POST("/attachments", fileHandler.Attach)
			files.GET("/attachments/:entityType/:entityId", fileHandler.GetAttachments)
			files.DELETE("/attachments/:id", fileHandler.Detach)
		}

		folders := protected.Group("/folders")
		{
			folders.POST("", fileHandler.CreateFolder)
			folders.GET("", fileHandler.GetFolders)
			folders.DELETE("/:id", fileHandler.DeleteFolder)
			folders.POST("/:id/files", fileHandler.AddFolderFile)
			folders.GET("/:id/files", fileHandler.GetFolderFiles)
			folders.DELETE("/:id/files/:fileId", fileHandler.RemoveFolderFile)
		}

		reports := protected.Group("/reports")
		{
			reports.POST("/users", reportHandler.ReportUser)
			reports.POST("/content", reportHandler.ReportContent)

			adminReports := reports.Group("")
			adminReports.Use(authMiddleware.RequireAdmin())
			{
				adminReports.GET("/users", reportHandler.UserReports)
				adminReports.GET("/content", reportHandler.ContentReports)
				adminReports.PUT("/users/:id", reportHandler.ReviewUserReport)
				adminReports.PUT("/content/:id", reportHandler.ReviewContentReport)
			}
		}

		policyUpdates := protected.Group("/policy-updates")
		{
			policyUpdates.POST("", policyUpdateHandler.Create)
			policyUpdates.PUT("/:id", policyUpdateHandler.Update)
			policyUpdates.DELETE("/:id", policyUpdateHandler.Delete)
		}

		equipmentReviews := protected.Group("/equipment-reviews")
		{
			equipmentReviews.POST("", equipmentReviewHandler.Create)
			equipmentReviews.PUT("/:id", equipmentReviewHandler.Update)
			equipmentReviews.DELETE("/:id", equipmentReviewHandler.Delete)
		}

		resources := protected.Group("/resources")
		{
			resources.POST("/:id", resourceHandler.Mark)
			resources.DELETE("/:id", resourceHandler.Unmark)

			adminResources := resources.Group("")
			adminResources.Use(authMiddleware.RequireAdmin())
			{
				adminResources.PUT("/:id/verify", resourceHandler.Verify)
			}
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetAll)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.GET("/ws", notificationHandler.HandleWebSocket)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		cron:        scheduler,
	}
}

func (s *Server) Run(addr string) error {
	s.cron.Start()
	defer s.cron.Stop()
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := strings.Split(allowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
