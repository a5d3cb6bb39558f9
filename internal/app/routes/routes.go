// Package routes wires controllers onto the gin engine
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/examsync/examsync/internal/app/controllers"
	"github.com/examsync/examsync/internal/middleware"
	"github.com/examsync/examsync/internal/pkg/auth"
)

// SetupRouter registers all API routes under /api/v1
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	moduleController *controllers.ModuleController,
	eventController *controllers.EventController,
	scheduleController *controllers.ScheduleController,
	availabilityController *controllers.AvailabilityController,
	rescheduleController *controllers.RescheduleController,
	evaluationController *controllers.EvaluationController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/refresh", authController.Refresh)
		authGroup.POST("/logout", authController.Logout)
	}

	users := v1.Group("/users", authMiddleware.JWTAuth())
	{
		users.GET("/me", userController.GetProfile)
		users.GET("", authMiddleware.RequireCapability(auth.CapManageUsers), userController.ListByRole)
		users.GET("/:id", authMiddleware.RequireCapability(auth.CapManageUsers), userController.GetUser)
		users.PUT("/:id", authMiddleware.RequireCapability(auth.CapManageUsers), userController.UpdateUser)
	}

	modules := v1.Group("/modules", authMiddleware.JWTAuth())
	{
		modules.GET("", moduleController.ListModules)
		modules.POST("", authMiddleware.RequireCapability(auth.CapManageModules), moduleController.CreateModule)
		modules.POST("/register", authMiddleware.RequireCapability(auth.CapRegisterModule), moduleController.Register)
		modules.GET("/registrations/me", authMiddleware.RequireCapability(auth.CapRegisterModule), moduleController.MyRegistrations)
		modules.GET("/:code", moduleController.GetModule)
		modules.PUT("/:code", authMiddleware.RequireCapability(auth.CapManageModules), moduleController.UpdateModule)
		modules.DELETE("/:code", authMiddleware.RequireCapability(auth.CapManageModules), moduleController.DeleteModule)
	}

	events := v1.Group("/events", authMiddleware.JWTAuth())
	{
		events.GET("", eventController.ListEvents)
		events.POST("", authMiddleware.RequireCapability(auth.CapManageEvents), eventController.CreateEvent)
		events.GET("/:id", eventController.GetEvent)
		events.PUT("/:id", authMiddleware.RequireCapability(auth.CapManageEvents), eventController.UpdateEvent)
		events.DELETE("/:id", authMiddleware.RequireCapability(auth.CapManageEvents), eventController.DeleteEvent)
		events.POST("/:id/schedule", authMiddleware.RequireCapability(auth.CapScheduleEvents), eventController.ScheduleEvent)
		events.GET("/:id/schedules", authMiddleware.RequireCapability(auth.CapManageEvents), eventController.GetEventSchedules)
	}

	schedules := v1.Group("/schedules", authMiddleware.JWTAuth())
	{
		schedules.GET("/me", authMiddleware.RequireCapability(auth.CapViewOwnSchedules), scheduleController.MySchedules)
		schedules.PUT("/:id/meeting-link", authMiddleware.RequireCapability(auth.CapSetMeetingLink), scheduleController.SetMeetingLink)
	}

	availability := v1.Group("/availability", authMiddleware.JWTAuth())
	{
		availability.POST("", authMiddleware.RequireCapability(auth.CapSubmitAvailability), availabilityController.Submit)
		availability.GET("/me", authMiddleware.RequireCapability(auth.CapSubmitAvailability), availabilityController.MyAvailability)
		availability.GET("/match/:id", authMiddleware.RequireCapability(auth.CapBrowseExaminers), availabilityController.MatchForEvent)
		availability.GET("/browse", authMiddleware.RequireCapability(auth.CapBrowseExaminers), availabilityController.Browse)
	}

	reschedules := v1.Group("/reschedules", authMiddleware.JWTAuth())
	{
		reschedules.POST("", authMiddleware.RequireCapability(auth.CapRequestReschedule), rescheduleController.Create)
		reschedules.GET("/me", authMiddleware.RequireCapability(auth.CapRequestReschedule), rescheduleController.MyRequests)
		reschedules.GET("/pending", authMiddleware.RequireCapability(auth.CapDecideReschedule), rescheduleController.ListPending)
		reschedules.POST("/:id/approve", authMiddleware.RequireCapability(auth.CapDecideReschedule), rescheduleController.Approve)
		reschedules.POST("/:id/reject", authMiddleware.RequireCapability(auth.CapDecideReschedule), rescheduleController.Reject)
	}

	evaluations := v1.Group("/evaluations", authMiddleware.JWTAuth())
	{
		evaluations.POST("", authMiddleware.RequireCapability(auth.CapSubmitEvaluation), evaluationController.Submit)
		evaluations.POST("/batch", authMiddleware.RequireCapability(auth.CapSubmitEvaluation), evaluationController.SubmitBatch)
		evaluations.GET("/events/:id", authMiddleware.RequireCapability(auth.CapViewReports), evaluationController.EventReport)
		evaluations.GET("/me", evaluationController.MyResults)
	}

	notifications := v1.Group("/notifications", authMiddleware.JWTAuth())
	{
		notifications.POST("", authMiddleware.RequireCapability(auth.CapNotifyExaminers), notificationController.Notify)
		notifications.GET("/me", notificationController.MyNotifications)
	}

	assignments := v1.Group("/assignments", authMiddleware.JWTAuth())
	{
		assignments.GET("/me", authMiddleware.RequireCapability(auth.CapRespondAssignment), notificationController.MyAssignments)
		assignments.POST("/:id/respond", authMiddleware.RequireCapability(auth.CapRespondAssignment), notificationController.Respond)
	}
}
