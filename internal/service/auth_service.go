package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"progress-hub/backend/internal/dto"
	"progress-hub/backend/pkg/jwt"
)

var (
	ErrRefreshTokenInvalid = errors.New("refresh token 无效或已过期")
	ErrTokenRevoked        = errors.New("token 已被吊销")
)

// TokenBlacklist Token 吊销存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
// 身份由外部签发的 Token 携带，本服务只负责续期与吊销
type AuthService interface {
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 吊销 Access Token 直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例，blacklist 可为 nil
func NewAuthService(jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	// 1. 解析并校验类型
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrRefreshTokenInvalid
	}

	// 2. 已使用或已吊销的 Refresh Token 不能再次使用
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 Token 黑名单失败，跳过检查", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	// 3. 签发新 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	// 4. 旧 Refresh Token 作废
	if claims.ExpiresAt != nil {
		s.revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	s.revoke(ctx, jti, expiresAt)
	return nil
}

// revoke 将 jti 加入黑名单，TTL 为剩余有效期；Redis 不可用时仅记录日志
func (s *authService) revoke(ctx context.Context, jti string, expiresAt time.Time) {
	if s.blacklist == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Warn("写入 Token 黑名单失败", zap.String("jti", jti), zap.Error(err))
	}
}
