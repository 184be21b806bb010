package dto

import "time"

// ── 班次模块 DTO ──

// ShiftResponse 班次信息
type ShiftResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	TargetCount    int       `json:"target_count"`
	CompletedCount int       `json:"completed_count"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Status         string    `json:"status"`
}

// CreateShiftTemplateRequest 新建周期班次模板请求
type CreateShiftTemplateRequest struct {
	UserID        string `json:"user_id"        binding:"required,uuid"`
	Weekday       int    `json:"weekday"        binding:"min=0,max=6"` // 0=周日 … 6=周六
	StartHour     int    `json:"start_hour"     binding:"min=0,max=23"`
	DurationHours int    `json:"duration_hours" binding:"required,min=1,max=24"`
	TargetCount   int    `json:"target_count"   binding:"required,min=1"`
}

// ShiftTemplateResponse 周期班次模板信息
type ShiftTemplateResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Weekday       int    `json:"weekday"`
	StartHour     int    `json:"start_hour"`
	DurationHours int    `json:"duration_hours"`
	TargetCount   int    `json:"target_count"`
}

// ImportTemplatesICSRequest ICS 日历导入请求
// 日历事件的星期与起止时间映射为模板，SUMMARY 末尾的 "xN" 解析为配额
type ImportTemplatesICSRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	ICS    string `json:"ics"     binding:"required"`
}

