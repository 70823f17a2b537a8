package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"progress-hub/backend/config"
	"progress-hub/backend/pkg/jwt"
)

// mockBlacklist 内存版 Token 黑名单
type mockBlacklist struct {
	revoked map[string]time.Duration
	failGet bool
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if m.failGet {
		return false, errors.New("redis 不可用")
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

func setupTestAuthService(blacklist TokenBlacklist) (AuthService, *jwt.Manager) {
	mgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	return NewAuthService(mgr, blacklist, zap.NewNop()), mgr
}

func TestAuthService_RefreshToken_Rotates(t *testing.T) {
	bl := newMockBlacklist()
	svc, mgr := setupTestAuthService(bl)
	refresh, _ := mgr.GenerateRefreshToken("user-1", RoleMember)

	resp, err := svc.RefreshToken(context.Background(), refresh)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际 %d", resp.ExpiresIn)
	}
	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil || claims.UserID != "user-1" || claims.TokenType != jwt.TokenTypeAccess {
		t.Fatalf("新 AccessToken 不符: %+v err=%v", claims, err)
	}

	// 旧 Refresh Token 已作废
	if _, err := svc.RefreshToken(context.Background(), refresh); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("重复使用 Refresh Token 应返回 ErrTokenRevoked，实际: %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), resp.RefreshToken); err != nil {
		t.Errorf("新 Refresh Token 应可使用: %v", err)
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, mgr := setupTestAuthService(newMockBlacklist())
	access, _ := mgr.GenerateAccessToken("user-1", RoleMember)

	if _, err := svc.RefreshToken(context.Background(), access); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("Access Token 不能用于刷新，实际: %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), "not-a-token"); !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Fatalf("非法 Token 应返回 ErrRefreshTokenInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_BlacklistUnavailable(t *testing.T) {
	bl := newMockBlacklist()
	bl.failGet = true
	svc, mgr := setupTestAuthService(bl)
	refresh, _ := mgr.GenerateRefreshToken("user-1", RoleMember)

	if _, err := svc.RefreshToken(context.Background(), refresh); err != nil {
		t.Fatalf("黑名单不可用时应降级放行: %v", err)
	}
}

func TestAuthService_RefreshToken_NilBlacklist(t *testing.T) {
	svc, mgr := setupTestAuthService(nil)
	refresh, _ := mgr.GenerateRefreshToken("user-1", RoleAdmin)

	if _, err := svc.RefreshToken(context.Background(), refresh); err != nil {
		t.Fatalf("未配置黑名单时刷新应成功: %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	bl := newMockBlacklist()
	svc, _ := setupTestAuthService(bl)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	if ttl, ok := bl.revoked["jti-1"]; !ok || ttl <= 0 || ttl > 10*time.Minute {
		t.Errorf("应以剩余有效期写入黑名单，实际 ttl=%v ok=%v", ttl, ok)
	}

	// 已过期的 Token 无需写入
	svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute))
	if _, ok := bl.revoked["jti-2"]; ok {
		t.Error("已过期的 Token 不应写入黑名单")
	}
}
