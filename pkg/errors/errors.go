package errors

import "errors"

// ErrStatusConflict 条件更新未命中：记录状态已被其他操作变更
var ErrStatusConflict = errors.New("记录状态已被其他操作变更")
