package errors

import "errors"

// ErrStatusConflict 状态条件更新冲突：记录已被其他操作修改
// 报告状态的条件更新（check-and-set）失败时返回，调用方可重新读取后重试
var ErrStatusConflict = errors.New("数据已被其他操作修改，请刷新后重试")
