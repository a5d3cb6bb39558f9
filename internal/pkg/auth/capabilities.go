package auth

import "github.com/examsync/examsync/internal/app/models"

// Capability names one action a role may perform. Handlers guard routes by
// capability rather than by comparing role strings inline.
type Capability string

const (
	CapManageUsers        Capability = "users:manage"
	CapManageModules      Capability = "modules:manage"
	CapRegisterModule     Capability = "modules:register"
	CapManageEvents       Capability = "events:manage"
	CapScheduleEvents     Capability = "events:schedule"
	CapViewOwnSchedules   Capability = "schedules:view-own"
	CapSetMeetingLink     Capability = "schedules:set-link"
	CapSubmitAvailability Capability = "availability:submit"
	CapBrowseExaminers    Capability = "availability:browse"
	CapRequestReschedule  Capability = "reschedule:request"
	CapDecideReschedule   Capability = "reschedule:decide"
	CapSubmitEvaluation   Capability = "evaluations:submit"
	CapViewReports        Capability = "evaluations:report"
	CapNotifyExaminers    Capability = "notifications:dispatch"
	CapRespondAssignment  Capability = "assignments:respond"
)

var roleCapabilities = map[models.RoleType]map[Capability]bool{
	models.RoleAdmin: {
		CapManageUsers:      true,
		CapManageModules:    true,
		CapManageEvents:     true,
		CapScheduleEvents:   true,
		CapBrowseExaminers:  true,
		CapDecideReschedule: true,
		CapViewReports:      true,
		CapNotifyExaminers:  true,
	},
	models.RoleLIC: {
		CapManageModules:    true,
		CapManageEvents:     true,
		CapScheduleEvents:   true,
		CapBrowseExaminers:  true,
		CapDecideReschedule: true,
		CapViewReports:      true,
		CapNotifyExaminers:  true,
	},
	models.RoleExaminer: {
		CapViewOwnSchedules:   true,
		CapSetMeetingLink:     true,
		CapSubmitAvailability: true,
		CapRequestReschedule:  true,
		CapSubmitEvaluation:   true,
		CapRespondAssignment:  true,
	},
	models.RoleStudent: {
		CapRegisterModule:   true,
		CapViewOwnSchedules: true,
	},
}

// RoleHas reports whether a role carries a capability
func RoleHas(role models.RoleType, capability Capability) bool {
	return roleCapabilities[role][capability]
}
