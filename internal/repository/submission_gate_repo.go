package repository

import (
	"context"

	"gorm.io/gorm"

	"apexlist/backend/internal/model"
)

// SubmissionGateRepository 提交开关数据访问接口
// 追加写日志，最新一条生效
type SubmissionGateRepository interface {
	Append(ctx context.Context, gate *model.SubmissionGate) error
	// Latest 返回最新一条开关记录；日志为空时返回 gorm.ErrRecordNotFound
	Latest(ctx context.Context) (*model.SubmissionGate, error)
}

type submissionGateRepo struct {
	db *gorm.DB
}

// NewSubmissionGateRepo 创建 SubmissionGateRepository 实例
func NewSubmissionGateRepo(db *gorm.DB) SubmissionGateRepository {
	return &submissionGateRepo{db: db}
}

func (r *submissionGateRepo) Append(ctx context.Context, gate *model.SubmissionGate) error {
	return r.db.WithContext(ctx).Create(gate).Error
}

func (r *submissionGateRepo) Latest(ctx context.Context) (*model.SubmissionGate, error) {
	var gate model.SubmissionGate
	err := r.db.WithContext(ctx).
		Order("gate_id DESC").
		First(&gate).Error
	if err != nil {
		return nil, err
	}
	return &gate, nil
}

