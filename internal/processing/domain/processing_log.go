package domain

import "time"

// LogStatus is the outcome recorded for one email
type LogStatus string

const (
	LogStatusSuccess LogStatus = "success"
	LogStatusWarning LogStatus = "warning"
	LogStatusError   LogStatus = "error"
)

// ProcessingLog records what happened to one email. Rows are never updated;
// the unique email id keeps an email from being handled twice.
type ProcessingLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Status       LogStatus `json:"status" gorm:"type:varchar(16);not null"`
	EmailID      string    `json:"emailId" gorm:"uniqueIndex;not null"`
	EmailFrom    string    `json:"emailFrom"`
	EmailSubject string    `json:"emailSubject"`
	FilterID     uint      `json:"filterId" gorm:"index"`
	FilterName   string    `json:"filterName"`
	ProcessedAt  time.Time `json:"processedAt" gorm:"index"`
	ErrorMessage *string   `json:"errorMessage"`
	DraftID      *string   `json:"draftId"`
}

// Pagination describes one page of logs
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}
