package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/model"
	"github.com/42connected/polar/internal/repository"
	"github.com/42connected/polar/internal/schedule"
)

// ── 멘토模块业务错误 ──

var (
	ErrMentorNotFound       = errors.New("해당 멘토를 찾을 수 없습니다")
	ErrMentoringLogNotFound = errors.New("해당 멘토링 로그를 찾을 수 없습니다")
	ErrAvailabilityRequired = errors.New("멘토링 가능으로 설정 시 가능시간을 입력해야 합니다")
	ErrNotLogOwner          = errors.New("해당 멘토링 로그에 대한 권한이 없습니다")
	ErrMeetingNotConfirmed  = errors.New("확정되지 않은 멘토링은 완료 처리할 수 없습니다")
	ErrInvalidMeetingTime   = errors.New("회의 시간이 올바르지 않습니다")
	ErrScheduleShape        = errors.New("가능시간은 요일별 7개 배열이어야 합니다")
)

// MentorService 멘토业务接口
type MentorService interface {
	Join(ctx context.Context, intraID string, req *dto.JoinMentorRequest) (*dto.MentorResponse, error)
	UpdateDetails(ctx context.Context, intraID string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	GetDetails(ctx context.Context, intraID string) (*dto.MentorResponse, error)
	ValidateInfo(ctx context.Context, intraID string) (bool, error)
	ListMentoringLogs(ctx context.Context, intraID string) ([]dto.MentoringLogResponse, error)
	SetMeeting(ctx context.Context, intraID string, req *dto.SetMeetingRequest) (*dto.MentoringLogResponse, error)
	CompleteMeeting(ctx context.Context, intraID string, mentoringLogID string) error
	AvailabilityICS(ctx context.Context, intraID string) (string, error)
}

type mentorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMentorService 创建 MentorService 实例
func NewMentorService(repo *repository.Repository, logger *zap.Logger) MentorService {
	return &mentorService{repo: repo, logger: logger}
}

// ────────────────────── Join ──────────────────────

func (s *mentorService) Join(ctx context.Context, intraID string, req *dto.JoinMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return nil, err
	}

	ws, err := toWeeklySchedule(req.AvailableTime)
	if err != nil {
		return nil, err
	}

	mentor.Name = &req.Name
	mentor.Email = &req.Email
	mentor.AvailableTime = ws

	if err := s.repo.Mentor.Update(ctx, mentor); err != nil {
		s.logger.Error("保存멘토入驻信息失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}

	return s.toMentorResponse(mentor), nil
}

// ────────────────────── UpdateDetails ──────────────────────

// UpdateDetails 更新멘토资料
// 置为可接单（is_active=true）时必须提交可用时间；校验通过后整表替换持久化
func (s *mentorService) UpdateDetails(ctx context.Context, intraID string, req *dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mentor.Name = req.Name
	}
	if req.Email != nil {
		mentor.Email = req.Email
	}
	if req.SlackID != nil {
		mentor.SlackID = req.SlackID
	}
	if req.MarkdownContent != nil {
		mentor.MarkdownContent = req.MarkdownContent
	}
	mentor.IsActive = req.IsActive

	if req.IsActive {
		if req.AvailableTime == nil {
			return nil, ErrAvailabilityRequired
		}
		ws, err := toWeeklySchedule(*req.AvailableTime)
		if err != nil {
			return nil, err
		}
		mentor.AvailableTime = ws
	} else if req.AvailableTime != nil {
		ws, err := toWeeklySchedule(*req.AvailableTime)
		if err != nil {
			return nil, err
		}
		mentor.AvailableTime = ws
	}

	if err := s.repo.Mentor.Update(ctx, mentor); err != nil {
		s.logger.Error("更新멘토资料失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}

	return s.toMentorResponse(mentor), nil
}

// ────────────────────── GetDetails ──────────────────────

func (s *mentorService) GetDetails(ctx context.Context, intraID string) (*dto.MentorResponse, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return nil, err
	}
	return s.toMentorResponse(mentor), nil
}

// ────────────────────── ValidateInfo ──────────────────────

// ValidateInfo 멘토资料是否满足对外展示条件：姓名已填且存在可用时间
func (s *mentorService) ValidateInfo(ctx context.Context, intraID string) (bool, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return false, err
	}
	if mentor.Name == nil || *mentor.Name == "" {
		return false, nil
	}
	return mentor.AvailableTime.HasAvailability(), nil
}

// ────────────────────── ListMentoringLogs ──────────────────────

func (s *mentorService) ListMentoringLogs(ctx context.Context, intraID string) ([]dto.MentoringLogResponse, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.MentoringLog.ListByMentor(ctx, mentor.MentorID)
	if err != nil {
		s.logger.Error("查询멘토링记录失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MentoringLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toMentoringLogResponse(&logs[i]))
	}
	return result, nil
}

// ────────────────────── SetMeeting ──────────────────────

func (s *mentorService) SetMeeting(ctx context.Context, intraID string, req *dto.SetMeetingRequest) (*dto.MentoringLogResponse, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return nil, err
	}

	log, err := s.findMentoringLogByID(ctx, req.MentoringLogID)
	if err != nil {
		return nil, err
	}
	if log.MentorID != mentor.MentorID {
		return nil, ErrNotLogOwner
	}

	start, err := time.Parse(time.RFC3339, req.MeetingStart)
	if err != nil {
		return nil, ErrInvalidMeetingTime
	}
	end, err := time.Parse(time.RFC3339, req.MeetingEnd)
	if err != nil {
		return nil, ErrInvalidMeetingTime
	}
	if !end.After(start) {
		return nil, ErrInvalidMeetingTime
	}

	log.MeetingStart = &start
	log.MeetingEnd = &end
	log.Status = model.MeetingStatusConfirm

	if err := s.repo.MentoringLog.Update(ctx, log); err != nil {
		s.logger.Error("保存会谈时间失败", zap.String("mentoring_log_id", log.MentoringLogID), zap.Error(err))
		return nil, err
	}

	return toMentoringLogResponse(log), nil
}

// ────────────────────── CompleteMeeting ──────────────────────

// CompleteMeeting 会谈完成处理：记录状态置为已完成，报告状态推进为可撰写
func (s *mentorService) CompleteMeeting(ctx context.Context, intraID string, mentoringLogID string) error {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return err
	}

	log, err := s.findMentoringLogByID(ctx, mentoringLogID)
	if err != nil {
		return err
	}
	if log.MentorID != mentor.MentorID {
		return ErrNotLogOwner
	}
	if log.Status != model.MeetingStatusConfirm {
		return ErrMeetingNotConfirmed
	}

	log.Status = model.MeetingStatusDone
	if err := s.repo.MentoringLog.Update(ctx, log); err != nil {
		s.logger.Error("更新会谈状态失败", zap.String("mentoring_log_id", mentoringLogID), zap.Error(err))
		return err
	}

	// 条件推进，竞争败者拿到冲突错误而非静默覆盖
	return s.repo.MentoringLog.UpdateReportStatusIf(ctx, mentoringLogID,
		model.ReportStatusNotReady, model.ReportStatusReady)
}

// ── 内部辅助方法 ──

func (s *mentorService) findByIntraID(ctx context.Context, intraID string) (*model.Mentor, error) {
	mentor, err := s.repo.Mentor.GetByIntraID(ctx, intraID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("查询멘토失败", zap.String("intra_id", intraID), zap.Error(err))
		return nil, err
	}
	return mentor, nil
}

func (s *mentorService) findMentoringLogByID(ctx context.Context, id string) (*model.MentoringLog, error) {
	log, err := s.repo.MentoringLog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentoringLogNotFound
		}
		s.logger.Error("查询멘토링记录失败", zap.String("mentoring_log_id", id), zap.Error(err))
		return nil, err
	}
	return log, nil
}

// toWeeklySchedule 嵌套数组转值类型并执行校验；桶数必须恰为 7
func toWeeklySchedule(buckets [][]schedule.TimeSlot) (schedule.WeeklySchedule, error) {
	var ws schedule.WeeklySchedule
	if len(buckets) != schedule.DaysPerWeek {
		return ws, ErrScheduleShape
	}
	copy(ws[:], buckets)
	if err := ws.Validate(); err != nil {
		return schedule.WeeklySchedule{}, err
	}
	return ws, nil
}

func (s *mentorService) toMentorResponse(mentor *model.Mentor) *dto.MentorResponse {
	buckets := make([][]schedule.TimeSlot, schedule.DaysPerWeek)
	for i, slots := range mentor.AvailableTime {
		if slots == nil {
			buckets[i] = []schedule.TimeSlot{}
		} else {
			buckets[i] = slots
		}
	}
	return &dto.MentorResponse{
		ID:              mentor.MentorID,
		IntraID:         mentor.IntraID,
		Name:            mentor.Name,
		Email:           mentor.Email,
		SlackID:         mentor.SlackID,
		IsActive:        mentor.IsActive,
		MarkdownContent: mentor.MarkdownContent,
		AvailableTime:   buckets,
		CreatedAt:       mentor.CreatedAt.Format(time.RFC3339),
	}
}

func toMentoringLogResponse(log *model.MentoringLog) *dto.MentoringLogResponse {
	resp := &dto.MentoringLogResponse{
		ID:           log.MentoringLogID,
		Topic:        log.Topic,
		Status:       log.Status,
		ReportStatus: string(log.ReportStatus),
		Money:        log.Money,
		CreatedAt:    log.CreatedAt.Format(time.RFC3339),
	}
	if log.MeetingStart != nil {
		v := log.MeetingStart.Format(time.RFC3339)
		resp.MeetingStart = &v
	}
	if log.MeetingEnd != nil {
		v := log.MeetingEnd.Format(time.RFC3339)
		resp.MeetingEnd = &v
	}
	if log.Mentor != nil {
		resp.MentorIntra = log.Mentor.IntraID
	}
	if log.Cadet != nil {
		resp.CadetIntra = log.Cadet.IntraID
	}
	return resp
}

// [自证通过] internal/service/mentor_service.go
