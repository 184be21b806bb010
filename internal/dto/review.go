package dto

import "time"

// ── 审核模块 DTO ──

// ClaimRequest 认领请求，listKey 为空时跨榜单认领
type ClaimRequest struct {
	ListKey string `json:"list_key" binding:"omitempty,oneof=classic platformer"`
}

// ReviewActionRequest 审核动作请求（拒绝 / 待定 / 接收的备注）
type ReviewActionRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

// RecordResponse 通过记录信息
type RecordResponse struct {
	ID             string    `json:"id"`
	LevelID        string    `json:"level_id"`
	LevelName      string    `json:"level_name,omitempty"`
	ListKey        string    `json:"list_key"`
	SubmittedBy    string    `json:"submitted_by"`
	Mobile         bool      `json:"mobile"`
	LDMID          *int      `json:"ldm_id,omitempty"`
	VideoURL       string    `json:"video_url"`
	RawURL         *string   `json:"raw_url,omitempty"`
	ReviewerID     string    `json:"reviewer_id"`
	ReviewerNotes  *string   `json:"reviewer_notes,omitempty"`
	CompletionTime int64     `json:"completion_time"`
	IsVerification bool      `json:"is_verification"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

