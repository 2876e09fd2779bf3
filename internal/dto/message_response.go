// File: internal/dto/message_response.go
package dto

// swagger:model dto.MessageResponse
type MessageResponse struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"Successfully register as a guest"`
}
