package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"assignflow/backend/internal/model"
	pkgerrors "assignflow/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User // key: user_id
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextID++
		user.UserID = fmt.Sprintf("user-%d", m.nextID)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmailAndRole(_ context.Context, email string, role model.Role) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetAdminByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range m.users {
		if u.Name == name && u.Role == model.RoleAdmin {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	nextID      int

	// stealStatus 非空时模拟并发抢先裁决：
	// 条件更新前将记录状态改为 stealStatus，使更新未命中
	stealStatus model.AssignmentStatus
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.nextID++
		assignment.AssignmentID = fmt.Sprintf("assignment-%d", m.nextID)
	}
	if assignment.Status == "" {
		assignment.Status = model.StatusPending
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByAdmin(_ context.Context, adminID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.AdminID == adminID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) UpdateStatusIfPending(_ context.Context, id string, status model.AssignmentStatus) error {
	a, ok := m.assignments[id]
	if !ok {
		return pkgerrors.ErrStatusConflict
	}
	if m.stealStatus != "" && a.Status == model.StatusPending {
		// 模拟另一请求在本次更新前抢先提交
		a.Status = m.stealStatus
	}
	if a.Status != model.StatusPending {
		return pkgerrors.ErrStatusConflict
	}
	a.Status = status
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
