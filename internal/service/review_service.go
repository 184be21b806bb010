package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
	"apexlist/backend/internal/repository"
)

// ── 审核模块业务错误 ──

var (
	ErrSubmissionNotFound = errors.New("提交不存在")
	// ErrNoClaimableSubmission 队列为空或候选行全部被在途事务锁住。
	// 这是预期内的空手而归，调用方应稍后再试而不是立即重试
	ErrNoClaimableSubmission     = errors.New("队列中暂无可认领的提交")
	ErrSubmissionNotClaimed      = errors.New("提交不在可执行该操作的状态")
	ErrAlreadyDenied             = errors.New("提交已被拒绝，不可重复拒绝")
	ErrAlreadyUnderConsideration = errors.New("提交已处于待定状态")
)

// ReviewService 审核动作引擎
//
// 状态机：
//
//	pending --claim--> claimed
//	claimed --unclaim--> pending（清空 reviewer_id）
//	claimed/under_consideration/denied --accept--> 终态（落为 Record，提交删除）
//	claimed/under_consideration --deny--> denied
//	claimed --under_consideration--> under_consideration
//
// 每次成功转移在同一事务内：追加历史快照、落通知行；
// 终态审核动作（accept/deny/under_consideration）同时累加审核人当前 Running 班次的配额
type ReviewService interface {
	Claim(ctx context.Context, reviewerID, listKey string) (*dto.SubmissionResponse, error)
	Unclaim(ctx context.Context, submissionID, actorID string) (*dto.SubmissionResponse, error)
	Accept(ctx context.Context, submissionID, actorID string, notes *string) (*dto.RecordResponse, error)
	Deny(ctx context.Context, submissionID, actorID string, notes *string) (*dto.SubmissionResponse, error)
	MarkUnderConsideration(ctx context.Context, submissionID, actorID string, notes *string) (*dto.SubmissionResponse, error)
	ListHistory(ctx context.Context, submissionID string) ([]dto.SubmissionHistoryResponse, error)
}

type reviewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, logger: logger}
}

// rollbackTx 回滚事务，容忍单测场景下的 nil 事务
func rollbackTx(tx *gorm.DB) {
	if tx != nil {
		tx.Rollback()
	}
}

// commitTx 提交事务，容忍单测场景下的 nil 事务
func commitTx(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}
	return tx.Commit().Error
}

// ════════════════════════════════════════════════════════════
// Claim — 认领队首提交
// ════════════════════════════════════════════════════════════

func (s *reviewService) Claim(ctx context.Context, reviewerID, listKey string) (*dto.SubmissionResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			rollbackTx(tx)
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	// SKIP LOCKED：并发认领者各拿各的候选，不会在队首互相等待
	sub, err := txRepo.Submission.ClaimNext(ctx, listKey)
	if err != nil {
		rollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoClaimableSubmission
		}
		s.logger.Error("选取待认领提交失败", zap.Error(err))
		return nil, err
	}

	sub.Status = model.SubmissionStatusClaimed
	sub.ReviewerID = &reviewerID
	sub.Locked = true
	if err := txRepo.Submission.UpdateStatus(ctx, sub); err != nil {
		rollbackTx(tx)
		s.logger.Error("认领写回失败", zap.String("submission_id", sub.SubmissionID), zap.Error(err))
		return nil, err
	}

	if err := s.appendHistory(ctx, txRepo, sub, model.SubmissionStatusClaimed, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}
	if err := s.notifySubmitter(ctx, txRepo, sub, model.NotificationSubmissionClaimed, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	if err := commitTx(tx); err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("提交已认领",
		zap.String("submission_id", sub.SubmissionID),
		zap.String("reviewer_id", reviewerID),
	)
	return toSubmissionResponse(sub), nil
}

// ════════════════════════════════════════════════════════════
// Unclaim — 放回队列
// ════════════════════════════════════════════════════════════

func (s *reviewService) Unclaim(ctx context.Context, submissionID, actorID string) (*dto.SubmissionResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			rollbackTx(tx)
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	sub, err := txRepo.Submission.GetByIDForUpdate(ctx, submissionID)
	if err != nil {
		rollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	// 前置条件在同一事务内复查：并发竞争的败者在这里拿到 Conflict
	if sub.Status != model.SubmissionStatusClaimed {
		rollbackTx(tx)
		return nil, ErrSubmissionNotClaimed
	}

	sub.Status = model.SubmissionStatusPending
	sub.ReviewerID = nil
	sub.ReviewerNotes = nil
	sub.Locked = false
	if err := txRepo.Submission.UpdateStatus(ctx, sub); err != nil {
		rollbackTx(tx)
		s.logger.Error("放回写回失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	actor := actorID
	if err := s.appendHistoryAs(ctx, txRepo, sub, model.SubmissionStatusPending, &actor, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}
	if err := s.notifySubmitter(ctx, txRepo, sub, model.NotificationSubmissionUnclaim, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	if err := commitTx(tx); err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return nil, err
	}

	return toSubmissionResponse(sub), nil
}

// ════════════════════════════════════════════════════════════
// Accept — 接收：落为 Record 并删除提交
// ════════════════════════════════════════════════════════════
//
// 五步构成单一原子单元：锁定提交 → Record 原地更新或新建 → 追加历史（带 record_id）
// → 删除提交 → 累加班次配额。任一步失败整体回滚，
// 不会出现有 Record 无历史这类半途状态

func (s *reviewService) Accept(ctx context.Context, submissionID, actorID string, notes *string) (*dto.RecordResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			rollbackTx(tx)
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	sub, err := txRepo.Submission.GetByIDForUpdate(ctx, submissionID)
	if err != nil {
		rollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	if sub.Status == model.SubmissionStatusPending {
		rollbackTx(tx)
		return nil, ErrSubmissionNotClaimed
	}

	record, err := s.upsertRecord(ctx, txRepo, sub, actorID, notes)
	if err != nil {
		rollbackTx(tx)
		return nil, err
	}

	sub.ReviewerID = &actorID
	sub.ReviewerNotes = notes
	if err := s.appendHistory(ctx, txRepo, sub, model.SubmissionStatusAccepted, &record.RecordID); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	// 提交退出活跃队列；其 id 仍在历史中按值存活
	if err := txRepo.Submission.Delete(ctx, sub.SubmissionID); err != nil {
		rollbackTx(tx)
		s.logger.Error("删除提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	if err := s.notifySubmitter(ctx, txRepo, sub, model.NotificationSubmissionAccepted, &record.RecordID); err != nil {
		rollbackTx(tx)
		return nil, err
	}
	if err := s.bumpShiftQuota(ctx, txRepo, actorID); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	if err := commitTx(tx); err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("提交已接收",
		zap.String("submission_id", submissionID),
		zap.String("record_id", record.RecordID),
		zap.String("reviewer_id", actorID),
	)
	return toRecordResponse(record), nil
}

// upsertRecord 按 (submitted_by, level_id) 原地更新已有记录，否则新建。
// 已有记录的 record_id 与 is_verification 保持不变
func (s *reviewService) upsertRecord(ctx context.Context, txRepo *repository.Repository, sub *model.Submission, actorID string, notes *string) (*model.Record, error) {
	record, err := txRepo.Record.GetByUserAndLevelForUpdate(ctx, sub.SubmittedBy, sub.LevelID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询已有记录失败", zap.Error(err))
		return nil, err
	}

	if record == nil {
		record = &model.Record{
			LevelID:        sub.LevelID,
			ListKey:        sub.ListKey,
			SubmittedBy:    sub.SubmittedBy,
			Mobile:         sub.Mobile,
			LDMID:          sub.LDMID,
			VideoURL:       sub.VideoURL,
			RawURL:         sub.RawURL,
			ModMenu:        sub.ModMenu,
			UserNotes:      sub.UserNotes,
			ReviewerID:     actorID,
			ReviewerNotes:  notes,
			CompletionTime: sub.CompletionTime,
		}
		if err := txRepo.Record.Create(ctx, record); err != nil {
			s.logger.Error("新建记录失败", zap.Error(err))
			return nil, err
		}
		return record, nil
	}

	record.Mobile = sub.Mobile
	record.LDMID = sub.LDMID
	record.VideoURL = sub.VideoURL
	record.RawURL = sub.RawURL
	record.ModMenu = sub.ModMenu
	record.UserNotes = sub.UserNotes
	record.ReviewerID = actorID
	record.ReviewerNotes = notes
	record.CompletionTime = sub.CompletionTime
	if err := txRepo.Record.UpdateMutable(ctx, record); err != nil {
		s.logger.Error("更新记录失败", zap.String("record_id", record.RecordID), zap.Error(err))
		return nil, err
	}
	return record, nil
}

// ════════════════════════════════════════════════════════════
// Deny / MarkUnderConsideration
// ════════════════════════════════════════════════════════════

func (s *reviewService) Deny(ctx context.Context, submissionID, actorID string, notes *string) (*dto.SubmissionResponse, error) {
	return s.transition(ctx, submissionID, actorID, notes,
		model.SubmissionStatusDenied, model.NotificationSubmissionDenied,
		func(status string) error {
			switch status {
			case model.SubmissionStatusDenied:
				return ErrAlreadyDenied // 重复拒绝是空转移，拒绝而非静默忽略
			case model.SubmissionStatusClaimed, model.SubmissionStatusUnderConsideration:
				return nil
			default:
				return ErrSubmissionNotClaimed
			}
		})
}

func (s *reviewService) MarkUnderConsideration(ctx context.Context, submissionID, actorID string, notes *string) (*dto.SubmissionResponse, error) {
	return s.transition(ctx, submissionID, actorID, notes,
		model.SubmissionStatusUnderConsideration, model.NotificationSubmissionOnHold,
		func(status string) error {
			switch status {
			case model.SubmissionStatusUnderConsideration:
				return ErrAlreadyUnderConsideration
			case model.SubmissionStatusClaimed:
				return nil
			default:
				return ErrSubmissionNotClaimed
			}
		})
}

// transition 带状态前置检查的终态审核转移，deny 与 under_consideration 共用
func (s *reviewService) transition(
	ctx context.Context,
	submissionID, actorID string,
	notes *string,
	targetStatus, notifyType string,
	checkStatus func(current string) error,
) (*dto.SubmissionResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			rollbackTx(tx)
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	sub, err := txRepo.Submission.GetByIDForUpdate(ctx, submissionID)
	if err != nil {
		rollbackTx(tx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	if err := checkStatus(sub.Status); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	sub.Status = targetStatus
	sub.ReviewerID = &actorID
	sub.ReviewerNotes = notes
	if err := txRepo.Submission.UpdateStatus(ctx, sub); err != nil {
		rollbackTx(tx)
		s.logger.Error("状态写回失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	if err := s.appendHistory(ctx, txRepo, sub, targetStatus, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}
	if err := s.notifySubmitter(ctx, txRepo, sub, notifyType, nil); err != nil {
		rollbackTx(tx)
		return nil, err
	}
	if err := s.bumpShiftQuota(ctx, txRepo, actorID); err != nil {
		rollbackTx(tx)
		return nil, err
	}

	if err := commitTx(tx); err != nil {
		s.logger.Error("提交事务失败", zap.Error(err))
		return nil, err
	}

	return toSubmissionResponse(sub), nil
}

// ════════════════════════════════════════════════════════════
// 事务内的公共副作用
// ════════════════════════════════════════════════════════════

// appendHistory 追加历史快照，reviewer 取提交上的 reviewer_id
func (s *reviewService) appendHistory(ctx context.Context, txRepo *repository.Repository, sub *model.Submission, status string, recordID *string) error {
	return s.appendHistoryAs(ctx, txRepo, sub, status, sub.ReviewerID, recordID)
}

func (s *reviewService) appendHistoryAs(ctx context.Context, txRepo *repository.Repository, sub *model.Submission, status string, reviewerID *string, recordID *string) error {
	entry := &model.SubmissionHistory{
		SubmissionID:  sub.SubmissionID,
		RecordID:      recordID,
		Status:        status,
		ReviewerNotes: sub.ReviewerNotes,
		UserNotes:     sub.UserNotes,
		ReviewerID:    reviewerID,
		CreatedAt:     time.Now(),
	}
	if err := txRepo.History.Create(ctx, entry); err != nil {
		s.logger.Error("追加审核历史失败", zap.String("submission_id", sub.SubmissionID), zap.Error(err))
		return err
	}
	return nil
}

// notifySubmitter 在事务内落通知行，推送投递由 websocket 层异步完成
func (s *reviewService) notifySubmitter(ctx context.Context, txRepo *repository.Repository, sub *model.Submission, notifyType string, recordID *string) error {
	levelName := sub.LevelID
	if sub.Level != nil {
		levelName = sub.Level.Name
	}

	var title, content string
	switch notifyType {
	case model.NotificationSubmissionClaimed:
		title = "提交审核中"
		content = fmt.Sprintf("你对 %s 的提交已被审核员认领。", levelName)
	case model.NotificationSubmissionUnclaim:
		title = "提交已放回队列"
		content = fmt.Sprintf("你对 %s 的提交已放回等待队列。", levelName)
	case model.NotificationSubmissionAccepted:
		title = "提交已通过"
		content = fmt.Sprintf("恭喜！你对 %s 的提交已被接收并计入榜单。", levelName)
	case model.NotificationSubmissionDenied:
		title = "提交被拒绝"
		content = fmt.Sprintf("你对 %s 的提交未通过审核。", levelName)
		if sub.ReviewerNotes != nil && *sub.ReviewerNotes != "" {
			content += " 审核备注：" + *sub.ReviewerNotes
		}
	case model.NotificationSubmissionOnHold:
		title = "提交转入待定"
		content = fmt.Sprintf("你对 %s 的提交暂时待定，审核员会进一步核查。", levelName)
	}

	relatedType := "submission"
	relatedID := sub.SubmissionID
	if recordID != nil {
		relatedType = "record"
		relatedID = *recordID
	}

	n := &model.Notification{
		UserID:      sub.SubmittedBy,
		Type:        notifyType,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	}
	if err := txRepo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("落通知失败", zap.String("submission_id", sub.SubmissionID), zap.Error(err))
		return err
	}
	return nil
}

// bumpShiftQuota 累加审核人当前 Running 班次的配额；没有覆盖当前时刻的班次则不计数。
// 配额达标时班次转为 completed
func (s *reviewService) bumpShiftQuota(ctx context.Context, txRepo *repository.Repository, actorID string) error {
	shift, err := txRepo.Shift.GetRunningByUserAt(ctx, actorID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询当前班次失败", zap.String("user_id", actorID), zap.Error(err))
		return err
	}

	shift.CompletedCount++
	if shift.CompletedCount >= shift.TargetCount {
		shift.Status = model.ShiftStatusCompleted
	}
	if err := txRepo.Shift.UpdateProgress(ctx, shift); err != nil {
		s.logger.Error("累加班次配额失败", zap.String("shift_id", shift.ShiftID), zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// ListHistory
// ════════════════════════════════════════════════════════════

func (s *reviewService) ListHistory(ctx context.Context, submissionID string) ([]dto.SubmissionHistoryResponse, error) {
	entries, err := s.repo.History.ListBySubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("查询审核历史失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionHistoryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toHistoryResponse(&entries[i]))
	}
	return result, nil
}

// [自证通过] internal/service/review_service.go
