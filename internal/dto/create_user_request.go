// File: internal/dto/create_user_request.go
package dto

// CreateUserRequest 註冊與管理員建立帳號共用；IsAdmin 只在管理員建立時採用
// swagger:model dto.CreateUserRequest
type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=4,max=64" example:"alice"`
	Password  string  `json:"password" validate:"required" example:"Secret123!"`
	FirstName *string `json:"first_name" validate:"omitempty,max=64" example:"Alice"`
	LastName  *string `json:"last_name" validate:"omitempty,max=64" example:"Liddell"`
	Email     *string `json:"email" validate:"omitempty,email,max=128" example:"alice@example.com"`
	IsAdmin   bool    `json:"is_admin" example:"false"`
}
