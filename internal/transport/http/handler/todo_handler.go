package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/core/cache"
	"taskdeck/internal/daterange"
	"taskdeck/internal/domain"
	"taskdeck/internal/service"
	mdw "taskdeck/internal/transport/http/middleware"
	"taskdeck/internal/transport/http/response"
)

type TodoHandler struct {
	svc *service.TodoService
	// cache 可为 nil（未配置 redis 时直接回源）
	cache   *cache.Cache
	viewTTL time.Duration
}

func NewTodoHandler(svc *service.TodoService, ch *cache.Cache, viewTTL time.Duration) *TodoHandler {
	return &TodoHandler{svc: svc, cache: ch, viewTTL: viewTTL}
}

type createTodoReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Section     string `json:"section" binding:"required"`
	DueDate     string `json:"dueDate"`
}

func (h *TodoHandler) Create(c *gin.Context) {
	var in createTodoReq
	if !bindJSON(c, &in) {
		return
	}
	todo, err := h.svc.Create(c.Request.Context(), c.GetString(mdw.CtxUserID), service.CreateTodoInput{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Section:     in.Section,
		DueDate:     in.DueDate,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo created successfully",
		"todo":    todo,
	})
}

func (h *TodoHandler) GetAll(c *gin.Context) {
	filter := c.DefaultQuery("filter", daterange.DefaultFilter)
	todos, err := h.svc.List(c.Request.Context(), c.GetString(mdw.CtxUserID), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.todoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// View 公开查看路径，不要求登录；走 redis 读穿缓存
func (h *TodoHandler) View(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.cache == nil {
		todo, err := h.svc.GetByID(ctx, id)
		if err != nil {
			h.todoError(c, err)
			return
		}
		c.JSON(http.StatusOK, todo)
		return
	}

	todo, err := cache.GetOrLoadJSON(h.cache, ctx, viewCacheKey(id), h.viewTTL,
		func(ctx context.Context) (*domain.Todo, error) {
			return h.svc.GetByID(ctx, id)
		})
	if err != nil {
		h.todoError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

type updateTodoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Section     string `json:"section"`
	DueDate     string `json:"dueDate"`
}

func (h *TodoHandler) Edit(c *gin.Context) {
	var in updateTodoReq
	if !bindJSON(c, &in) {
		return
	}
	id := c.Param("id")
	todo, err := h.svc.Update(c.Request.Context(), id, service.UpdateTodoInput{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Section:     in.Section,
		DueDate:     in.DueDate,
	})
	if err != nil {
		h.todoError(c, err)
		return
	}
	h.invalidateView(c, id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo updated successfully",
		"todo":    todo,
	})
}

type moveTodoReq struct {
	Section string `json:"section" binding:"required"`
}

func (h *TodoHandler) Move(c *gin.Context) {
	var in moveTodoReq
	if !bindJSON(c, &in) {
		return
	}
	id := c.Param("id")
	todo, err := h.svc.Move(c.Request.Context(), id, in.Section)
	if err != nil {
		h.todoError(c, err)
		return
	}
	h.invalidateView(c, id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Todo moved successfully",
		"todo":    todo,
	})
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.todoError(c, err)
		return
	}
	h.invalidateView(c, id)
	response.Message(c, http.StatusOK, "Todo deleted successfully")
}

func (h *TodoHandler) Analytics(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context(), c.GetString(mdw.CtxUserID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *TodoHandler) todoError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		response.Message(c, http.StatusNotFound, "Todo not found")
		return
	}
	response.FromError(c, err)
}

func (h *TodoHandler) invalidateView(c *gin.Context, id string) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), viewCacheKey(id))
	}
}

func viewCacheKey(id string) string { return "todo:view:" + id }
