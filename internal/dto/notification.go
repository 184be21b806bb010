package dto

import "time"

// ── 通知模块 DTO ──

// NotificationResponse 通知信息
type NotificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	RelatedType *string   `json:"related_type,omitempty"`
	RelatedID   *string   `json:"related_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UnreadCountResponse 未读数量
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ── 提交开关 DTO ──

// SubmissionGateResponse 提交开关状态
type SubmissionGateResponse struct {
	Enabled   bool       `json:"enabled"`
	ChangedBy *string    `json:"changed_by,omitempty"`
	ChangedAt *time.Time `json:"changed_at,omitempty"`
}

// SetSubmissionGateRequest 设置提交开关请求
type SetSubmissionGateRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

