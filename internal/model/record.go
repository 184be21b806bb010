package model

// Record 通过记录表 — 对应 records
//
// 一个 (submitted_by, level_id) 至多一条记录；再次接收提交时原地更新，
// record_id 与 is_verification 保持不变
type Record struct {
	RecordID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"record_id"`
	LevelID        string  `gorm:"type:uuid;not null;uniqueIndex:uniq_records_player_level,priority:2" json:"level_id"`
	ListKey        string  `gorm:"type:varchar(20);not null;default:'classic'"      json:"list_key"`
	SubmittedBy    string  `gorm:"type:uuid;not null;uniqueIndex:uniq_records_player_level,priority:1" json:"submitted_by"`
	Mobile         bool    `gorm:"not null;default:false"                           json:"mobile"`
	LDMID          *int    `json:"ldm_id,omitempty"`
	VideoURL       string  `gorm:"type:varchar(500);not null"                       json:"video_url"`
	RawURL         *string `gorm:"type:varchar(500)"                                json:"raw_url,omitempty"`
	ModMenu        *string `gorm:"type:varchar(100)"                                json:"mod_menu,omitempty"`
	UserNotes      *string `gorm:"type:varchar(1000)"                               json:"user_notes,omitempty"`
	ReviewerID     string  `gorm:"type:uuid;not null"                               json:"reviewer_id"`
	ReviewerNotes  *string `gorm:"type:varchar(1000)"                               json:"reviewer_notes,omitempty"`
	CompletionTime int64   `gorm:"not null;default:0"                               json:"completion_time"`
	IsVerification bool    `gorm:"not null;default:false"                           json:"is_verification"` // 首杀验证记录，由榜单编辑子系统标记
	BaseModel

	// 关联
	Level     *Level `gorm:"foreignKey:LevelID;references:LevelID"    json:"level,omitempty"`
	Submitter *User  `gorm:"foreignKey:SubmittedBy;references:UserID" json:"submitter,omitempty"`
}

// TableName 指定表名
func (Record) TableName() string { return "records" }

// [自证通过] internal/model/record.go
