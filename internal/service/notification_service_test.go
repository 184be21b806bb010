package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"apexlist/backend/internal/model"
)

func setupTestNotificationService() (NotificationService, *testRepos) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedNotifications(repos *testRepos, userID string, n int) {
	for i := 0; i < n; i++ {
		repos.notification.Create(context.Background(), &model.Notification{
			UserID:  userID,
			Type:    model.NotificationSubmissionClaimed,
			Title:   "提交审核中",
			Content: "测试通知",
		})
	}
}

func TestNotificationService_ListAndUnread(t *testing.T) {
	svc, repos := setupTestNotificationService()

	seedNotifications(repos, "player-1", 3)
	seedNotifications(repos, "player-2", 1)

	items, total, err := svc.List(context.Background(), "player-1", 1, 20)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Errorf("player-1 应有 3 条通知，实际 total=%d len=%d", total, len(items))
	}

	count, err := svc.UnreadCount(context.Background(), "player-1")
	if err != nil {
		t.Fatalf("UnreadCount 失败: %v", err)
	}
	if count.Count != 3 {
		t.Errorf("未读数应为 3，实际 %d", count.Count)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, repos := setupTestNotificationService()

	seedNotifications(repos, "player-1", 1)
	id := repos.notification.notifications[0].NotificationID

	if err := svc.MarkRead(context.Background(), id, "player-1"); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}

	count, _ := svc.UnreadCount(context.Background(), "player-1")
	if count.Count != 0 {
		t.Errorf("标记后未读数应为 0，实际 %d", count.Count)
	}
}

func TestNotificationService_MarkRead_WrongOwner(t *testing.T) {
	svc, repos := setupTestNotificationService()

	seedNotifications(repos, "player-1", 1)
	id := repos.notification.notifications[0].NotificationID

	err := svc.MarkRead(context.Background(), id, "player-2")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("标记他人通知应返回 ErrNotificationNotFound，实际 %v", err)
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc, repos := setupTestNotificationService()

	seedNotifications(repos, "player-1", 5)

	if err := svc.MarkAllRead(context.Background(), "player-1"); err != nil {
		t.Fatalf("MarkAllRead 失败: %v", err)
	}

	count, _ := svc.UnreadCount(context.Background(), "player-1")
	if count.Count != 0 {
		t.Errorf("全部标记后未读数应为 0，实际 %d", count.Count)
	}
}

