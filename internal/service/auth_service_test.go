package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"apexlist/backend/config"
	"apexlist/backend/internal/dto"
	"apexlist/backend/internal/model"
	"apexlist/backend/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *testRepos) {
	t.Helper()

	repos := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret-key-0123456789",
			AccessTokenTTL:         time.Hour,
			RefreshTokenTTLDefault: 168 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func seedUser(t *testing.T, repos *testRepos, id, username, password, role string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repos.user.users[id] = &model.User{
		UserID:       id,
		Username:     username,
		DisplayName:  username,
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos := setupTestAuthService(t)

	seedUser(t, repos, "user-1", "alice", "correct-password", model.RolePlayer)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Errorf("应返回完整 token 对")
	}
	if tokens.User.ID != "user-1" || tokens.User.Role != model.RolePlayer {
		t.Errorf("用户信息不正确: %+v", tokens.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos := setupTestAuthService(t)

	seedUser(t, repos, "user-1", "alice", "correct-password", model.RolePlayer)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	// 不泄露用户是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知用户应返回 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, repos := setupTestAuthService(t)

	seedUser(t, repos, "user-1", "alice", "pw", model.RoleModerator)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh 失败: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.User.ID != "user-1" {
		t.Errorf("刷新应返回新的 token 对与用户信息")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, repos := setupTestAuthService(t)

	seedUser(t, repos, "user-1", "alice", "pw", model.RolePlayer)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	// 拿 access token 去换新 token 对应被拒
	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.AccessToken,
	})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token 不可用于刷新，实际 %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not.a.token",
	})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("非法 token 应返回 ErrInvalidToken，实际 %v", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, repos := setupTestAuthService(t)

	seedUser(t, repos, "user-1", "alice", "pw", model.RoleAdmin)

	user, err := svc.GetCurrentUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetCurrentUser 失败: %v", err)
	}
	if user.Username != "alice" || user.Role != model.RoleAdmin {
		t.Errorf("用户信息不正确: %+v", user)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "user-missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("未知用户应返回 ErrUserNotFound，实际 %v", err)
	}
}

