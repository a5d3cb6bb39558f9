package services

import (
	"github.com/examsync/examsync/internal/app/repositories"
	"github.com/examsync/examsync/internal/pkg/auth"
	"github.com/examsync/examsync/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	ModuleService       *ModuleService
	EventService        *EventService
	AvailabilityService *AvailabilityService
	RescheduleService   *RescheduleService
	EvaluationService   *EvaluationService
	NotificationService *NotificationService
}

// NewServices wires all services onto the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, mailer email.Mailer) *Services {
	return &Services{
		AuthService:   NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:   NewUserService(repos.UserRepository),
		ModuleService: NewModuleService(repos.ModuleRepository),
		EventService: NewEventService(
			repos.EventRepository, repos.ScheduleRepository,
			repos.ModuleRepository, repos.UserRepository),
		AvailabilityService: NewAvailabilityService(
			repos.AvailabilityRepository, repos.ScheduleRepository,
			repos.EventRepository, repos.UserRepository),
		RescheduleService: NewRescheduleService(repos.RescheduleRepository, repos.ScheduleRepository),
		EvaluationService: NewEvaluationService(
			repos.EvaluationRepository, repos.ScheduleRepository, repos.EventRepository),
		NotificationService: NewNotificationService(
			repos.NotificationRepository, repos.AssignmentRepository,
			repos.EventRepository, repos.UserRepository, mailer),
	}
}
