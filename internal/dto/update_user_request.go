// File: internal/dto/update_user_request.go
package dto

// UpdateUserRequest PATCH 只更新有帶的欄位
// swagger:model dto.UpdateUserRequest
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=4,max=64" example:"alice"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=1" example:"Secret123!"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=64" example:"Alice"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=64" example:"Liddell"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=128" example:"alice@example.com"`
	IsAdmin   *bool   `json:"is_admin,omitempty" example:"false"`
}
