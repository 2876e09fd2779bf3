// File: internal/dto/members_request.go
package dto

// swagger:model dto.GuestsRequest
type GuestsRequest struct {
	Guests []string `json:"guests" validate:"required,min=1,dive,required" example:"alice,bob"`
}

// swagger:model dto.ParticipantsRequest
type ParticipantsRequest struct {
	Participants []string `json:"participants" validate:"required,min=1,dive,required" example:"alice,bob"`
}

// swagger:model dto.GuestsResponse
type GuestsResponse struct {
	Status int         `json:"status" example:"200"`
	Guests []UserShort `json:"guests"`
}

// swagger:model dto.ParticipantsResponse
type ParticipantsResponse struct {
	Status       int         `json:"status" example:"200"`
	Participants []UserShort `json:"participants"`
}
