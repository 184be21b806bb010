package repository

import (
	"context"

	"gorm.io/gorm"

	"apexlist/backend/internal/model"
)

// ShiftTemplateRepository 周期班次模板数据访问接口
type ShiftTemplateRepository interface {
	Create(ctx context.Context, tpl *model.RecurringShiftTemplate) error
	GetByID(ctx context.Context, id string) (*model.RecurringShiftTemplate, error)
	List(ctx context.Context) ([]model.RecurringShiftTemplate, error)
	ListByWeekday(ctx context.Context, weekday int) ([]model.RecurringShiftTemplate, error)
	Delete(ctx context.Context, id string) error
}

type shiftTemplateRepo struct {
	db *gorm.DB
}

// NewShiftTemplateRepo 创建 ShiftTemplateRepository 实例
func NewShiftTemplateRepo(db *gorm.DB) ShiftTemplateRepository {
	return &shiftTemplateRepo{db: db}
}

func (r *shiftTemplateRepo) Create(ctx context.Context, tpl *model.RecurringShiftTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *shiftTemplateRepo) GetByID(ctx context.Context, id string) (*model.RecurringShiftTemplate, error) {
	var tpl model.RecurringShiftTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *shiftTemplateRepo) List(ctx context.Context) ([]model.RecurringShiftTemplate, error) {
	var tpls []model.RecurringShiftTemplate
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("weekday ASC, start_hour ASC").
		Find(&tpls).Error
	return tpls, err
}

func (r *shiftTemplateRepo) ListByWeekday(ctx context.Context, weekday int) ([]model.RecurringShiftTemplate, error) {
	var tpls []model.RecurringShiftTemplate
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		Order("start_hour ASC").
		Find(&tpls).Error
	return tpls, err
}

func (r *shiftTemplateRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", id).
		Delete(&model.RecurringShiftTemplate{}).Error
}

