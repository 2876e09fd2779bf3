// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型，status 與實際 HTTP 狀態碼一致
// swagger:model dto.HTTPError
type HTTPError struct {
	Status int `json:"status" example:"404"`
	// message 錯誤描述
	Message string `json:"message" example:"Event not found"`
	// errors 欄位驗證失敗時的欄位與原因
	Errors map[string]string `json:"errors,omitempty"`
}
