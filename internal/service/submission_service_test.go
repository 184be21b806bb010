package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
)

func setupTestSubmissionService() (SubmissionService, *testRepos) {
	repos := newTestRepos()
	svc := NewSubmissionService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedLevel(repos *testRepos, id, name, listKey string) {
	repos.level.levels[id] = &model.Level{
		LevelID: id,
		Name:    name,
		ListKey: listKey,
	}
}

func validCreateRequest(levelID string) *dto.CreateSubmissionRequest {
	return &dto.CreateSubmissionRequest{
		LevelID:        levelID,
		VideoURL:       "https://youtu.be/abc123",
		CompletionTime: 95000,
	}
}

func TestSubmissionService_Create_Success(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedLevel(repos, "lv-1", "Zodiac", model.ListClassic)

	sub, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-1"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if sub.Status != model.SubmissionStatusPending {
		t.Errorf("新提交应为 pending，实际 %s", sub.Status)
	}
	if sub.ListKey != model.ListClassic {
		t.Errorf("list_key 应冗余自关卡，实际 %s", sub.ListKey)
	}
	if sub.Priority {
		t.Errorf("新提交不应带优先标记")
	}
	if sub.Locked {
		t.Errorf("新提交不应被锁定")
	}
}

func TestSubmissionService_Create_LevelNotFound(t *testing.T) {
	svc, _ := setupTestSubmissionService()

	_, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-missing"))
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("应返回 ErrLevelNotFound，实际 %v", err)
	}
}

func TestSubmissionService_Create_InvalidVideoURL(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedLevel(repos, "lv-1", "Zodiac", model.ListClassic)

	for _, bad := range []string{"not a url", "ftp://example.com/v", "https://"} {
		req := validCreateRequest("lv-1")
		req.VideoURL = bad
		if _, err := svc.Create(context.Background(), "player-1", req); !errors.Is(err, ErrInvalidVideoURL) {
			t.Errorf("VideoURL=%q 应返回 ErrInvalidVideoURL，实际 %v", bad, err)
		}
	}
}

func TestSubmissionService_Create_DuplicateActive(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedLevel(repos, "lv-1", "Zodiac", model.ListClassic)

	if _, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-1")); err != nil {
		t.Fatalf("首次 Create 失败: %v", err)
	}

	_, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-1"))
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Errorf("同玩家同关卡重复提交应返回 ErrDuplicateSubmission，实际 %v", err)
	}

	// 其他玩家可提交同关卡
	if _, err := svc.Create(context.Background(), "player-2", validCreateRequest("lv-1")); err != nil {
		t.Errorf("其他玩家提交同关卡不应失败: %v", err)
	}
}

func TestSubmissionService_Create_GateClosed(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedLevel(repos, "lv-1", "Zodiac", model.ListClassic)
	repos.gate.Append(context.Background(), &model.SubmissionGate{Enabled: false, ChangedBy: "admin-1"})

	_, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-1"))
	if !errors.Is(err, ErrSubmissionsDisabled) {
		t.Errorf("开关关闭时应返回 ErrSubmissionsDisabled，实际 %v", err)
	}

	// 重新开启后恢复
	repos.gate.Append(context.Background(), &model.SubmissionGate{Enabled: true, ChangedBy: "admin-1"})
	if _, err := svc.Create(context.Background(), "player-1", validCreateRequest("lv-1")); err != nil {
		t.Errorf("开关重新开启后提交不应失败: %v", err)
	}
}

func TestSubmissionService_Withdraw(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedPendingSubmission(repos, "sub-1", "player-1", "lv-1", model.ListClassic, false, time.Now())

	if err := svc.Withdraw(context.Background(), "sub-1", "player-1"); err != nil {
		t.Fatalf("Withdraw 失败: %v", err)
	}
	if _, ok := repos.submission.subs["sub-1"]; ok {
		t.Errorf("撤回后提交应被删除")
	}
}

func TestSubmissionService_Withdraw_NotOwner(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedPendingSubmission(repos, "sub-1", "player-1", "lv-1", model.ListClassic, false, time.Now())

	err := svc.Withdraw(context.Background(), "sub-1", "player-2")
	if !errors.Is(err, ErrNotSubmissionOwner) {
		t.Errorf("非归属人撤回应返回 ErrNotSubmissionOwner，实际 %v", err)
	}
}

func TestSubmissionService_Withdraw_LockedByReview(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	claimedSubmission(repos, "sub-1", "player-1", "lv-1", "mod-1")

	err := svc.Withdraw(context.Background(), "sub-1", "player-1")
	if !errors.Is(err, ErrSubmissionLocked) {
		t.Errorf("审核中提交撤回应返回 ErrSubmissionLocked，实际 %v", err)
	}
	if _, ok := repos.submission.subs["sub-1"]; !ok {
		t.Errorf("失败的撤回不应删除提交")
	}
}

func TestSubmissionService_SetPriority(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	seedPendingSubmission(repos, "sub-1", "player-1", "lv-1", model.ListClassic, false, time.Now())

	sub, err := svc.SetPriority(context.Background(), "sub-1", true)
	if err != nil {
		t.Fatalf("SetPriority 失败: %v", err)
	}
	if !sub.Priority {
		t.Errorf("优先标记应被设置")
	}
	if !repos.submission.subs["sub-1"].Priority {
		t.Errorf("存量优先标记应同步更新")
	}
}

func TestSubmissionService_SetPriority_NotPending(t *testing.T) {
	svc, repos := setupTestSubmissionService()

	claimedSubmission(repos, "sub-1", "player-1", "lv-1", "mod-1")

	_, err := svc.SetPriority(context.Background(), "sub-1", true)
	if !errors.Is(err, ErrSubmissionLocked) {
		t.Errorf("非 pending 提交不可调整优先级，实际 %v", err)
	}
}

