package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/42connected/polar/internal/model"
	pkgerrors "github.com/42connected/polar/pkg/errors"
)

// ── Mock MentorRepository ──

type mockMentorRepo struct {
	mentors map[string]*model.Mentor
}

func newMockMentorRepo() *mockMentorRepo {
	return &mockMentorRepo{mentors: make(map[string]*model.Mentor)}
}

func (m *mockMentorRepo) Create(_ context.Context, mentor *model.Mentor) error {
	if mentor.MentorID == "" {
		mentor.MentorID = "mentor-" + mentor.IntraID
	}
	m.mentors[mentor.MentorID] = mentor
	return nil
}

func (m *mockMentorRepo) GetByID(_ context.Context, id string) (*model.Mentor, error) {
	if mentor, ok := m.mentors[id]; ok {
		return mentor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) GetByIntraID(_ context.Context, intraID string) (*model.Mentor, error) {
	for _, mentor := range m.mentors {
		if mentor.IntraID == intraID {
			return mentor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentorRepo) Update(_ context.Context, mentor *model.Mentor) error {
	m.mentors[mentor.MentorID] = mentor
	return nil
}

// ── Mock CadetRepository ──

type mockCadetRepo struct {
	cadets map[string]*model.Cadet
}

func newMockCadetRepo() *mockCadetRepo {
	return &mockCadetRepo{cadets: make(map[string]*model.Cadet)}
}

func (m *mockCadetRepo) Create(_ context.Context, cadet *model.Cadet) error {
	if cadet.CadetID == "" {
		cadet.CadetID = "cadet-" + cadet.IntraID
	}
	m.cadets[cadet.CadetID] = cadet
	return nil
}

func (m *mockCadetRepo) GetByID(_ context.Context, id string) (*model.Cadet, error) {
	if cadet, ok := m.cadets[id]; ok {
		return cadet, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCadetRepo) GetByIntraID(_ context.Context, intraID string) (*model.Cadet, error) {
	for _, cadet := range m.cadets {
		if cadet.IntraID == intraID {
			return cadet, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock MentoringLogRepository ──

// mockMentoringLogRepo 互斥锁保护下的条件更新，
// 与数据库原子 UPDATE 等价，用于并发定稿测试
type mockMentoringLogRepo struct {
	mu   sync.Mutex
	seq  int
	logs map[string]*model.MentoringLog

	listErr error // 置位后 ListCompletedWindows 返回该错误
}

func newMockMentoringLogRepo() *mockMentoringLogRepo {
	return &mockMentoringLogRepo{logs: make(map[string]*model.MentoringLog)}
}

func (m *mockMentoringLogRepo) Create(_ context.Context, log *model.MentoringLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log.MentoringLogID == "" {
		m.seq++
		log.MentoringLogID = fmt.Sprintf("log-%03d", m.seq)
	}
	m.logs[log.MentoringLogID] = log
	return nil
}

func (m *mockMentoringLogRepo) GetByID(_ context.Context, id string) (*model.MentoringLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log, ok := m.logs[id]; ok {
		cp := *log
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMentoringLogRepo) Update(_ context.Context, log *model.MentoringLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.MentoringLogID] = log
	return nil
}

func (m *mockMentoringLogRepo) ListByMentor(_ context.Context, mentorID string) ([]model.MentoringLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.MentoringLog
	for _, log := range m.logs {
		if log.MentorID == mentorID {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (m *mockMentoringLogRepo) ListByCadet(_ context.Context, cadetID string) ([]model.MentoringLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.MentoringLog
	for _, log := range m.logs {
		if log.CadetID == cadetID {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (m *mockMentoringLogRepo) ListCompletedWindows(_ context.Context, mentorID string) ([]model.MeetingWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.MeetingWindow
	for _, log := range m.logs {
		if log.MentorID == mentorID && log.Status == model.MeetingStatusDone &&
			log.MeetingStart != nil && log.MeetingEnd != nil {
			result = append(result, model.MeetingWindow{Start: *log.MeetingStart, End: *log.MeetingEnd})
		}
	}
	return result, nil
}

func (m *mockMentoringLogRepo) UpdateReportStatusIf(_ context.Context, id string, from, to model.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(id, 0, false, from, to)
}

func (m *mockMentoringLogRepo) SetMoneyAndReportStatusIf(_ context.Context, id string, money int64, from, to model.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(id, money, true, from, to)
}

func (m *mockMentoringLogRepo) transitionLocked(id string, money int64, setMoney bool, from, to model.ReportStatus) error {
	log, ok := m.logs[id]
	if !ok || log.ReportStatus != from {
		return pkgerrors.ErrStatusConflict
	}
	log.ReportStatus = to
	if setMoney {
		log.Money = money
	}
	return nil
}

// ── Mock ReportRepository ──

// mockReportRepo 持有멘토/카뎃/会谈记录仓库引用，在 GetByID 时拼装预加载关联
type mockReportRepo struct {
	mu      sync.Mutex
	seq     int
	reports map[string]*model.Report

	mentors *mockMentorRepo
	cadets  *mockCadetRepo
	logs    *mockMentoringLogRepo
}

func newMockReportRepo(mentors *mockMentorRepo, cadets *mockCadetRepo, logs *mockMentoringLogRepo) *mockReportRepo {
	return &mockReportRepo{
		reports: make(map[string]*model.Report),
		mentors: mentors,
		cadets:  cadets,
		logs:    logs,
	}
}

func (m *mockReportRepo) CreateForLog(ctx context.Context, report *model.Report) error {
	if err := m.logs.UpdateReportStatusIf(ctx, report.MentoringLogID,
		model.ReportStatusReady, model.ReportStatusInProgress); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	report.ReportID = fmt.Sprintf("report-%03d", m.seq)
	report.CreatedAt = time.Now()
	m.reports[report.ReportID] = report
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id string) (*model.Report, error) {
	m.mu.Lock()
	report, ok := m.reports[id]
	var cp model.Report
	if ok {
		cp = *report
	}
	m.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	m.attachPreloads(&cp)
	return &cp, nil
}

func (m *mockReportRepo) GetByMentoringLogID(_ context.Context, mentoringLogID string) (*model.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, report := range m.reports {
		if report.MentoringLogID == mentoringLogID {
			cp := *report
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "place":
			v := value.(string)
			report.Place = &v
		case "topic":
			v := value.(string)
			report.Topic = &v
		case "content":
			v := value.(string)
			report.Content = &v
		case "feedback_message":
			v := value.(string)
			report.FeedbackMessage = &v
		case "signature_url":
			v := value.(string)
			report.SignatureURL = &v
		case "feedback1":
			report.Feedback1 = value.(int)
		case "feedback2":
			report.Feedback2 = value.(int)
		case "feedback3":
			report.Feedback3 = value.(int)
		case "image_url":
			report.ImageURL = value.(model.StringArray)
		}
	}
	return nil
}

func (m *mockReportRepo) ListPage(_ context.Context, limit, offset int) ([]model.Report, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Report
	for _, report := range m.reports {
		cp := *report
		m.attachPreloads(&cp)
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockReportRepo) attachPreloads(report *model.Report) {
	if mentor, ok := m.mentors.mentors[report.MentorID]; ok {
		report.Mentor = mentor
	}
	if cadet, ok := m.cadets.cadets[report.CadetID]; ok {
		report.Cadet = cadet
	}
	m.logs.mu.Lock()
	if log, ok := m.logs.logs[report.MentoringLogID]; ok {
		cp := *log
		report.MentoringLog = &cp
	}
	m.logs.mu.Unlock()
}

// [自证通过] internal/service/mock_repos_test.go
