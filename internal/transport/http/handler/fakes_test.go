package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/core/auth"
	"taskdeck/internal/domain"
	"taskdeck/internal/service"
	"taskdeck/internal/transport/http/handler"
	mdw "taskdeck/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

// 内存仓储，替代 gorm 层

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*domain.User{}} }

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, e := range f.users {
		if e.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

type fakeTodoRepo struct {
	todos map[string]*domain.Todo
}

func newFakeTodoRepo() *fakeTodoRepo { return &fakeTodoRepo{todos: map[string]*domain.Todo{}} }

func (f *fakeTodoRepo) Create(_ context.Context, t *domain.Todo) error {
	cp := *t
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
	}
	f.todos[t.ID] = &cp
	*t = cp
	return nil
}

func (f *fakeTodoRepo) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodoRepo) FindByOwnerCreatedBetween(_ context.Context, ownerID string, start, end time.Time) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, t := range f.todos {
		if t.OwnerID != ownerID || t.CreatedAt.Before(start) || t.CreatedAt.After(end) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, t *domain.Todo) error {
	cur, ok := f.todos[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != t.Version {
		return domain.ErrVersionConflict
	}
	cp := *t
	cp.Version++
	f.todos[t.ID] = &cp
	t.Version = cp.Version
	return nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.todos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}

func (f *fakeTodoRepo) CountBySection(_ context.Context, ownerID string, s domain.Section) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.Section == s {
			n++
		}
	}
	return n, nil
}

func (f *fakeTodoRepo) CountByPriority(_ context.Context, ownerID string, p domain.Priority) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.Priority == p {
			n++
		}
	}
	return n, nil
}

func (f *fakeTodoRepo) CountWithDueDate(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, t := range f.todos {
		if t.OwnerID == ownerID && t.DueDate != nil {
			n++
		}
	}
	return n, nil
}

// 测试环境：和正式路由同样的挂载方式，仓储换成内存实现

type env struct {
	r     *gin.Engine
	jwter *auth.JWTer
	users *fakeUserRepo
	todos *fakeTodoRepo
}

func newEnv() *env {
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "taskdeck"}
	users := newFakeUserRepo()
	todos := newFakeTodoRepo()

	authH := handler.NewAuthHandler(service.NewAuthService(users, jwter))
	todoH := handler.NewTodoHandler(service.NewTodoService(todos), nil, 0)

	r := gin.New()
	authG := r.Group("/auth")
	authG.POST("/register", authH.Register)
	authG.POST("/login", authH.Login)
	authG.POST("/reset", mdw.AuthJWT(jwter), authH.Reset)

	todoG := r.Group("/todo")
	todoG.GET("/view/:id", todoH.View)
	protected := todoG.Group("", mdw.AuthJWT(jwter))
	protected.POST("/create", todoH.Create)
	protected.GET("/getAll", todoH.GetAll)
	protected.GET("/get/:id", todoH.Get)
	protected.PUT("/edit/:id", todoH.Edit)
	protected.PATCH("/move/:id", todoH.Move)
	protected.DELETE("/delete/:id", todoH.Delete)
	protected.GET("/analytics", todoH.Analytics)

	return &env{r: r, jwter: jwter, users: users, todos: todos}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *env) register(t *testing.T, name, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}
