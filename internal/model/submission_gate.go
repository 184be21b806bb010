package model

import "time"

// SubmissionGate 提交开关表 — 对应 submission_gate
//
// 追加写日志，最新一条生效；空表视为开启。
// 只在提交入队前检查，不参与认领/审核状态机
type SubmissionGate struct {
	GateID    int64     `gorm:"primaryKey;autoIncrement"           json:"gate_id"`
	Enabled   bool      `gorm:"not null"                           json:"enabled"`
	ChangedBy string    `gorm:"type:uuid;not null"                 json:"changed_by"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (SubmissionGate) TableName() string { return "submission_gate" }

// [自证通过] internal/model/submission_gate.go
