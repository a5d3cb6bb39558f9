package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	ModuleRepository       *ModuleRepository
	EventRepository        *EventRepository
	ScheduleRepository     *ScheduleRepository
	AvailabilityRepository *AvailabilityRepository
	NotificationRepository *NotificationRepository
	AssignmentRepository   *AssignmentRepository
	RescheduleRepository   *RescheduleRepository
	EvaluationRepository   *EvaluationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ModuleRepository:       NewModuleRepository(db),
		EventRepository:        NewEventRepository(db),
		ScheduleRepository:     NewScheduleRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AssignmentRepository:   NewAssignmentRepository(db),
		RescheduleRepository:   NewRescheduleRepository(db),
		EvaluationRepository:   NewEvaluationRepository(db),
	}
}
