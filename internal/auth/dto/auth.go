package dto

import emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"

type MailCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

type AIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

type AuthURLResponse struct {
	URL string `json:"url"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// AIStatus is the AI half of StatusResponse
type AIStatus struct {
	Connected bool `json:"connected"`
}

type StatusResponse struct {
	Mail emaildomain.ConnectionStatus `json:"mail"`
	AI   AIStatus                     `json:"ai"`
}
