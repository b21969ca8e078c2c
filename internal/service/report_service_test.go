package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/model"
	"github.com/42connected/polar/internal/repository"
	pkgerrors "github.com/42connected/polar/pkg/errors"
)

// ── 测试辅助 ──

type reportTestEnv struct {
	svc     ReportService
	mentors *mockMentorRepo
	cadets  *mockCadetRepo
	logs    *mockMentoringLogRepo
	reports *mockReportRepo
}

func setupTestReportService() *reportTestEnv {
	mentors := newMockMentorRepo()
	cadets := newMockCadetRepo()
	logs := newMockMentoringLogRepo()
	reports := newMockReportRepo(mentors, cadets, logs)
	repo := &repository.Repository{
		Mentor:       mentors,
		Cadet:        cadets,
		MentoringLog: logs,
		Report:       reports,
	}
	svc := NewReportService(repo, testPolicy, zap.NewNop())
	return &reportTestEnv{svc: svc, mentors: mentors, cadets: cadets, logs: logs, reports: reports}
}

// seedMentoringLog 准备一对멘토/카뎃与一条会谈记录
func (env *reportTestEnv) seedMentoringLog(t *testing.T, reportStatus model.ReportStatus, start, end string) *model.MentoringLog {
	t.Helper()
	ctx := context.Background()

	name := "테스트멘토"
	mentor := &model.Mentor{IntraID: "m-jiwoo", Name: &name}
	if err := env.mentors.Create(ctx, mentor); err != nil {
		t.Fatalf("准备멘토失败: %v", err)
	}
	cadet := &model.Cadet{IntraID: "c-dohyun"}
	if err := env.cadets.Create(ctx, cadet); err != nil {
		t.Fatalf("准备카뎃失败: %v", err)
	}

	log := &model.MentoringLog{
		MentorID:     mentor.MentorID,
		CadetID:      cadet.CadetID,
		Status:       model.MeetingStatusDone,
		ReportStatus: reportStatus,
	}
	if start != "" {
		s := mustTime(t, start)
		e := mustTime(t, end)
		log.MeetingStart = &s
		log.MeetingEnd = &e
	}
	if err := env.logs.Create(ctx, log); err != nil {
		t.Fatalf("准备会谈记录失败: %v", err)
	}
	return log
}

// seedEnteredReport 创建一份已填写完整、处于撰写中的报告
func (env *reportTestEnv) seedEnteredReport(t *testing.T, start, end string) string {
	t.Helper()
	ctx := context.Background()

	log := env.seedMentoringLog(t, model.ReportStatusReady, start, end)
	id, err := env.svc.Create(ctx, &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
	if err != nil {
		t.Fatalf("创建레포트失败: %v", err)
	}

	place, topic, content := "개포 클러스터", "Go 동시성", "고루틴과 채널"
	fb := 5
	_, err = env.svc.Update(ctx, id, &dto.UpdateReportRequest{
		Place:     &place,
		Topic:     &topic,
		Content:   &content,
		Feedback1: &fb,
		Feedback2: &fb,
		Feedback3: &fb,
		ImageURL:  []string{"https://cdn.example.com/sign.png"},
	}, "m-jiwoo")
	if err != nil {
		t.Fatalf("填写레포트失败: %v", err)
	}
	return id
}

// ── Create 测试 ──

func TestReportService_Create_Success(t *testing.T) {
	env := setupTestReportService()
	log := env.seedMentoringLog(t, model.ReportStatusReady, "", "")

	id, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if id == "" {
		t.Fatal("应返回레포트ID")
	}

	stored, err := env.logs.GetByID(context.Background(), log.MentoringLogID)
	if err != nil {
		t.Fatalf("回读会谈记录失败: %v", err)
	}
	if stored.ReportStatus != model.ReportStatusInProgress {
		t.Errorf("创建后报告状态应为 in_progress，实际=%s", stored.ReportStatus)
	}
}

func TestReportService_Create_LogNotFound(t *testing.T) {
	env := setupTestReportService()

	_, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: "log-999"})
	if !errors.Is(err, ErrMentoringLogNotFound) {
		t.Errorf("期望 ErrMentoringLogNotFound，实际: %v", err)
	}
}

func TestReportService_Create_NotEligible(t *testing.T) {
	env := setupTestReportService()

	for _, status := range []model.ReportStatus{
		model.ReportStatusNotReady,
		model.ReportStatusInProgress,
		model.ReportStatusCompleted,
	} {
		log := env.seedMentoringLog(t, status, "", "")
		_, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
		if !errors.Is(err, ErrReportNotEligible) {
			t.Errorf("状态=%s 期望 ErrReportNotEligible，实际: %v", status, err)
		}
	}
}

func TestReportService_Create_Duplicate(t *testing.T) {
	env := setupTestReportService()
	log := env.seedMentoringLog(t, model.ReportStatusReady, "", "")

	if _, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID}); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	_, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
	if !errors.Is(err, ErrReportAlreadyExists) {
		t.Errorf("期望 ErrReportAlreadyExists，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestReportService_Update_NotOwner(t *testing.T) {
	env := setupTestReportService()
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")

	topic := "다른 주제"
	_, err := env.svc.Update(context.Background(), id, &dto.UpdateReportRequest{Topic: &topic}, "someone-else")
	if !errors.Is(err, ErrNotReportOwner) {
		t.Errorf("期望 ErrNotReportOwner，实际: %v", err)
	}
}

func TestReportService_Update_CompletedIsImmutable(t *testing.T) {
	env := setupTestReportService()
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")

	if _, err := env.svc.Complete(context.Background(), id); err != nil {
		t.Fatalf("定稿应成功: %v", err)
	}

	topic := "수정 시도"
	_, err := env.svc.Update(context.Background(), id, &dto.UpdateReportRequest{Topic: &topic}, "m-jiwoo")
	if !errors.Is(err, ErrReportNotMutable) {
		t.Errorf("定稿后期望 ErrReportNotMutable，实际: %v", err)
	}
}

func TestReportService_Update_IsDoneChainsComplete(t *testing.T) {
	env := setupTestReportService()
	log := env.seedMentoringLog(t, model.ReportStatusReady, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")
	id, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
	if err != nil {
		t.Fatalf("创建레포트失败: %v", err)
	}

	place, topic, content := "서초 클러스터", "git", "rebase"
	fb := 4
	result, err := env.svc.Update(context.Background(), id, &dto.UpdateReportRequest{
		Place:     &place,
		Topic:     &topic,
		Content:   &content,
		Feedback1: &fb,
		Feedback2: &fb,
		Feedback3: &fb,
		ImageURL:  []string{"https://cdn.example.com/sign.png"},
		IsDone:    true,
	}, "m-jiwoo")
	if err != nil {
		t.Fatalf("带 is_done 的更新应成功: %v", err)
	}
	if result == nil {
		t.Fatal("is_done=true 应返回结算结果")
	}
	if result.Hours != 2 || result.Money != 200000 {
		t.Errorf("期望 2 小时 / 200000，实际 %d / %d", result.Hours, result.Money)
	}
}

// ── Complete 测试 ──

func TestReportService_Complete_Success(t *testing.T) {
	env := setupTestReportService()
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T13:00:00+09:00")

	result, err := env.svc.Complete(context.Background(), id)
	if err != nil {
		t.Fatalf("Complete 应成功: %v", err)
	}
	if result.Hours != 3 {
		t.Errorf("期望 3 小时，实际 %d", result.Hours)
	}
	if result.Money != 300000 {
		t.Errorf("期望 300000，实际 %d", result.Money)
	}

	report, err := env.reports.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("回读레포트失败: %v", err)
	}
	if report.MentoringLog.ReportStatus != model.ReportStatusCompleted {
		t.Errorf("定稿后状态应为 completed，实际=%s", report.MentoringLog.ReportStatus)
	}
	if report.MentoringLog.Money != 300000 {
		t.Errorf("报酬应写入会谈记录，实际=%d", report.MentoringLog.Money)
	}
}

func TestReportService_Complete_NotEntered(t *testing.T) {
	env := setupTestReportService()
	log := env.seedMentoringLog(t, model.ReportStatusReady, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")
	id, err := env.svc.Create(context.Background(), &dto.CreateReportRequest{MentoringLogID: log.MentoringLogID})
	if err != nil {
		t.Fatalf("创建레포트失败: %v", err)
	}

	// 必填字段缺失，提交门槛不满足
	_, err = env.svc.Complete(context.Background(), id)
	if !errors.Is(err, ErrReportNotEntered) {
		t.Errorf("期望 ErrReportNotEntered，实际: %v", err)
	}

	stored, _ := env.logs.GetByID(context.Background(), log.MentoringLogID)
	if stored.ReportStatus != model.ReportStatusInProgress {
		t.Errorf("提交失败时状态不应改变，实际=%s", stored.ReportStatus)
	}
}

func TestReportService_Complete_HistoryQueryFails(t *testing.T) {
	env := setupTestReportService()
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")

	infraErr := errors.New("connection refused")
	env.logs.listErr = infraErr

	// 历史查询失败必须原样上抛，不得按"无历史"结算
	_, err := env.svc.Complete(context.Background(), id)
	if !errors.Is(err, infraErr) {
		t.Errorf("期望基础设施错误上抛，实际: %v", err)
	}
}

func TestReportService_Complete_ExcludesOwnMeeting(t *testing.T) {
	env := setupTestReportService()
	// 本次会谈自身已是 done 状态，会出现在历史查询结果中，
	// 结算时必须剔除，否则同一会谈被计两次
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T13:00:00+09:00")

	result, err := env.svc.Complete(context.Background(), id)
	if err != nil {
		t.Fatalf("Complete 应成功: %v", err)
	}
	if result.Hours != 3 {
		t.Errorf("自身会谈不应计入历史，期望 3 小时，实际 %d", result.Hours)
	}
}

func TestReportService_Complete_ConcurrentOnlyOneWins(t *testing.T) {
	env := setupTestReportService()
	id := env.seedEnteredReport(t, "2026-03-10T10:00:00+09:00", "2026-03-10T12:00:00+09:00")

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = env.svc.Complete(context.Background(), id)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, pkgerrors.ErrStatusConflict), errors.Is(err, ErrReportNotMutable):
			conflicts++
		default:
			t.Errorf("意外错误: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("并发定稿应恰好一次成功，实际成功 %d 次", successes)
	}
	if successes+conflicts != workers {
		t.Errorf("成功与冲突之和应为 %d，实际 %d", workers, successes+conflicts)
	}
}

// ── ListPage 测试 ──

func TestReportService_ListPage(t *testing.T) {
	env := setupTestReportService()
	for i := 0; i < 3; i++ {
		env.seedMentoringLog(t, model.ReportStatusReady, "", "")
	}
	ctx := context.Background()
	for _, logID := range []string{"log-001", "log-002", "log-003"} {
		if _, err := env.svc.Create(ctx, &dto.CreateReportRequest{MentoringLogID: logID}); err != nil {
			t.Fatalf("创建레포트失败: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	list, total, err := env.svc.ListPage(ctx, &dto.ReportListRequest{
		PaginationRequest: dto.PaginationRequest{Page: 1, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("ListPage 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("期望 total=3，实际=%d", total)
	}
	if len(list) != 2 {
		t.Errorf("期望返回 2 条，实际=%d", len(list))
	}
}

// [自证通过] internal/service/report_service_test.go
