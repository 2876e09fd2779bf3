// File: internal/dto/event_request.go
package dto

// swagger:model dto.CreateEventRequest
type CreateEventRequest struct {
	Title   string   `json:"title" validate:"required,max=128" example:"Go meetup"`
	Summary *string  `json:"summary" validate:"omitempty,max=1028" example:"Monthly talks"`
	DtStart DateTime `json:"dt_start" validate:"required" swaggertype:"string" example:"2030-01-01 18:00"`
	DtEnd   DateTime `json:"dt_end" validate:"required" swaggertype:"string" example:"2030-01-01 21:00"`
}

// UpdateEventRequest 只允許 title、summary、dt_start、dt_end
// swagger:model dto.UpdateEventRequest
type UpdateEventRequest struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=1,max=128" example:"Go meetup"`
	Summary *string   `json:"summary,omitempty" validate:"omitempty,max=1028" example:"Monthly talks"`
	DtStart *DateTime `json:"dt_start,omitempty" swaggertype:"string" example:"2030-01-01 18:00"`
	DtEnd   *DateTime `json:"dt_end,omitempty" swaggertype:"string" example:"2030-01-01 21:00"`
}
