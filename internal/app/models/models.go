package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin    RoleType = "ADMIN"
	RoleLIC      RoleType = "LIC" // lead/instructor coordinator
	RoleExaminer RoleType = "EXAMINER"
	RoleStudent  RoleType = "STUDENT"
)

// EventStatus represents the lifecycle state of an examination event
type EventStatus string

const (
	EventPending   EventStatus = "PENDING"
	EventUpcoming  EventStatus = "UPCOMING"
	EventCompleted EventStatus = "COMPLETED"
)

// ResponseStatus represents an examiner's response to an assignment
type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "PENDING"
	ResponseAccepted ResponseStatus = "ACCEPTED"
	ResponseDeclined ResponseStatus = "DECLINED"
)

// RescheduleStatus represents the state of a reschedule request
type RescheduleStatus string

const (
	ReschedulePending  RescheduleStatus = "PENDING"
	RescheduleApproved RescheduleStatus = "APPROVED"
	RescheduleRejected RescheduleStatus = "REJECTED"
)

// DeliveryStatus tracks whether a notification was handed to the mailer.
// Response state lives on the paired Assignment, not here.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
)
