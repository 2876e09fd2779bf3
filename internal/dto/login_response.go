// File: internal/dto/login_response.go
package dto

// swagger:model dto.LoginResponse
type LoginResponse struct {
	Status      int      `json:"status" example:"200"`
	Message     string   `json:"message" example:"Successfully logged in as <alice>"`
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type" example:"Bearer"`
	Profile     UserFull `json:"profile"`
}
