package model

import "time"

// SubmissionHistory 提交审核历史表 — 对应 submission_history
//
// 只追加不修改。submission_id 为值引用而非外键，
// 提交被接收删除后历史仍然保留
type SubmissionHistory struct {
	HistoryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"history_id"`
	SubmissionID  string    `gorm:"type:uuid;not null;index"                       json:"submission_id"`
	RecordID      *string   `gorm:"type:uuid"                                      json:"record_id,omitempty"`
	Status        string    `gorm:"type:varchar(30);not null"                      json:"status"` // 本次转移落定后的状态快照（接收时为 accepted）
	ReviewerNotes *string   `gorm:"type:varchar(1000)"                             json:"reviewer_notes,omitempty"`
	UserNotes     *string   `gorm:"type:varchar(1000)"                             json:"user_notes,omitempty"`
	ReviewerID    *string   `gorm:"type:uuid"                                      json:"reviewer_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (SubmissionHistory) TableName() string { return "submission_history" }

// [自证通过] internal/model/submission_history.go
