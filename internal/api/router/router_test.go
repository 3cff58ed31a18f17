package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"college-admin/backend/config"
	"college-admin/backend/internal/api/handler"
	"college-admin/backend/internal/repository"
	"college-admin/backend/internal/service"
	"college-admin/backend/internal/store/memory"
)

func setupRouter() *gin.Engine {
	now := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	repo := repository.NewRepository(memory.New())
	svc := service.NewService(repo, zap.NewNop(), now)
	cfg := &config.Config{Server: config.ServerConfig{Port: 8080, BodyLimit: 1 << 20}}
	return Setup(cfg, handler.NewHandler(svc), zap.NewNop())
}

func do(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRouter_Health(t *testing.T) {
	w, _ := do(setupRouter(), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("期望 200, 实际 %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("期望响应携带 X-Request-ID")
	}
}

func TestRouter_EnrollmentFlow(t *testing.T) {
	r := setupRouter()

	w, _ := do(r, http.MethodPost, "/api/v1/courses", map[string]any{
		"courseCode": "101", "courseName": "Intro", "lecturer": "Dr X", "year": 2025, "semester": "A",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建课程期望 201, 实际 %d: %s", w.Code, w.Body.String())
	}

	w, _ = do(r, http.MethodPost, "/api/v1/students", map[string]any{
		"studentId": "123456789", "fullName": "Ann Lee", "age": 20, "gender": "Female", "registrationYear": 2024,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建学生期望 201, 实际 %d: %s", w.Code, w.Body.String())
	}

	w, _ = do(r, http.MethodPut, "/api/v1/courses/101/students/123456789", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("选课期望 200, 实际 %d: %s", w.Code, w.Body.String())
	}

	w, resp := do(r, http.MethodGet, "/api/v1/courses/101/students", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查询课程学生期望 200, 实际 %d", w.Code)
	}
	data, _ := resp["data"].(map[string]any)
	if total, _ := data["total"].(float64); total != 1 {
		t.Errorf("期望课程学生数 1, 实际 %v", data["total"])
	}

	w, resp = do(r, http.MethodPut, "/api/v1/courses/101/students/123456789", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("重复选课期望 409, 实际 %d", w.Code)
	}
	if code, _ := resp["code"].(float64); code != 15001 {
		t.Errorf("期望错误码 15001, 实际 %v", resp["code"])
	}
}

func TestRouter_ValidateUnknownEntity(t *testing.T) {
	w, resp := do(setupRouter(), http.MethodPost, "/api/v1/validate/lecturers", map[string]any{})
	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404, 实际 %d", w.Code)
	}
	if code, _ := resp["code"].(float64); code != 10003 {
		t.Errorf("期望错误码 10003, 实际 %v", resp["code"])
	}
}

func TestRouter_MessageCodeMustBeRoutable(t *testing.T) {
	r := setupRouter()

	w, resp := do(r, http.MethodPost, "/api/v1/messages", map[string]any{"messageCode": "a/b", "messageContent": "hi"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400, 实际 %d: %s", w.Code, w.Body.String())
	}
	if code, _ := resp["code"].(float64); code != 10002 {
		t.Errorf("期望错误码 10002, 实际 %v", resp["code"])
	}

	w, _ = do(r, http.MethodPost, "/api/v1/messages", map[string]any{"messageCode": "notice-01", "messageContent": "hi"})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201, 实际 %d: %s", w.Code, w.Body.String())
	}
	w, _ = do(r, http.MethodGet, "/api/v1/messages/notice-01", nil)
	if w.Code != http.StatusOK {
		t.Errorf("期望可按编码读取消息, 实际 %d", w.Code)
	}
	w, _ = do(r, http.MethodDelete, "/api/v1/messages/notice-01", nil)
	if w.Code != http.StatusOK {
		t.Errorf("期望可按编码删除消息, 实际 %d", w.Code)
	}
}

func TestRouter_ChunkedBodyTooLarge(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	svc := service.NewService(repository.NewRepository(memory.New()), zap.NewNop(), now)
	cfg := &config.Config{Server: config.ServerConfig{Port: 8080, BodyLimit: 32}}
	r := Setup(cfg, handler.NewHandler(svc), zap.NewNop())

	body, _ := json.Marshal(map[string]any{"courseCode": "101", "courseName": "Intro", "lecturer": "Dr X", "year": 2025, "semester": "A"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413, 实际 %d: %s", w.Code, w.Body.String())
	}
}
