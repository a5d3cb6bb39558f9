package dto

// CreateModuleRequest is the payload for creating a module
type CreateModuleRequest struct {
	Code     string `json:"code" binding:"required" example:"CS101"`
	Name     string `json:"name" binding:"required" example:"Data Structures"`
	Password string `json:"password" binding:"required,min=4" example:"cs101pass"`
}

// UpdateModuleRequest is the payload for partially updating a module
type UpdateModuleRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ModuleRegistrationRequest is the student payload for joining a module
type ModuleRegistrationRequest struct {
	ModuleCode string `json:"moduleCode" binding:"required" example:"CS101"`
	Password   string `json:"password" binding:"required" example:"cs101pass"`
}
