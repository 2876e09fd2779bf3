// File: internal/dto/user_response.go
package dto

import "events-api/internal/model"

// swagger:model dto.UserFull
type UserFull struct {
	ID        int     `json:"id" example:"1"`
	Username  string  `json:"username" example:"alice"`
	FirstName *string `json:"first_name" example:"Alice"`
	LastName  *string `json:"last_name" example:"Liddell"`
	Email     *string `json:"email" example:"alice@example.com"`
	IsAdmin   bool    `json:"is_admin" example:"false"`
}

// swagger:model dto.UserShort
type UserShort struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

func NewUserFull(u model.User) UserFull {
	return UserFull{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
	}
}

func NewUserShort(u model.User) UserShort {
	return UserShort{ID: u.ID, Username: u.Username}
}

func NewUserShortList(list []model.User) []UserShort {
	out := make([]UserShort, 0, len(list))
	for _, u := range list {
		out = append(out, NewUserShort(u))
	}
	return out
}

// UserDetail 單一使用者回應
// swagger:model dto.UserDetail
type UserDetail struct {
	Status  int      `json:"status" example:"200"`
	Profile UserFull `json:"profile"`
}

func NewUserDetail(status int, u model.User) UserDetail {
	return UserDetail{Status: status, Profile: NewUserFull(u)}
}
