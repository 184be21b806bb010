package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func setupTestGateService() (GateService, *testRepos) {
	repos := newTestRepos()
	svc := NewGateService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestGateService_Status_DefaultEnabled(t *testing.T) {
	svc, _ := setupTestGateService()

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status 失败: %v", err)
	}
	if !status.Enabled {
		t.Errorf("从未设置过开关时应默认开启")
	}
	if status.ChangedBy != nil {
		t.Errorf("默认状态不应有操作人")
	}
}

func TestGateService_Set_LatestWins(t *testing.T) {
	svc, _ := setupTestGateService()
	ctx := context.Background()

	if _, err := svc.Set(ctx, false, "admin-1"); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}
	if _, err := svc.Set(ctx, true, "admin-2"); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status 失败: %v", err)
	}
	if !status.Enabled {
		t.Errorf("最新一条开关记录应生效")
	}
	if status.ChangedBy == nil || *status.ChangedBy != "admin-2" {
		t.Errorf("操作人应为最后一次设置者")
	}
}

