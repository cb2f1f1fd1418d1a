package service

import (
	"context"
	"strings"
	"time"

	"taskdeck/internal/daterange"
	"taskdeck/internal/domain"
	"taskdeck/pkg/utils"
)

// DueDateLayout 固定的日-月-年文本格式（DD-MM-YYYY）
const DueDateLayout = "02-01-2006"

type TodoService struct {
	todos domain.TodoRepository
	now   func() time.Time
}

func NewTodoService(todos domain.TodoRepository) *TodoService {
	return &TodoService{todos: todos, now: time.Now}
}

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    string
	Section     string
	DueDate     string
}

func (s *TodoService) Create(ctx context.Context, ownerID string, in CreateTodoInput) (*domain.Todo, error) {
	ve := domain.NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		ve.Add("title", "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		ve.Add("description", "description is required")
	}
	p := domain.Priority(in.Priority)
	if in.Priority == "" {
		ve.Add("priority", "priority is required")
	} else if !p.Valid() {
		ve.Add("priority", "priority must be one of Low, Medium, Urgent")
	}
	sec := domain.Section(in.Section)
	if in.Section == "" {
		ve.Add("section", "section is required")
	} else if !sec.Valid() {
		ve.Add("section", "section must be one of To do, In Progress, Under Review, Finished")
	}
	if !ve.Empty() {
		return nil, ve
	}

	var due *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(DueDateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidDueDate
		}
		due = &d
	}

	t := &domain.Todo{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    p,
		Section:     sec,
		DueDate:     due,
		OwnerID:     ownerID,
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	t, err := s.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// List 窗口按 createdAt 闭区间过滤，未识别的 filter 回落到默认的一周
func (s *TodoService) List(ctx context.Context, ownerID, filter string) ([]domain.Todo, error) {
	if filter == "" {
		filter = daterange.DefaultFilter
	}
	w := daterange.Resolve(filter, s.now())
	return s.todos.FindByOwnerCreatedBetween(ctx, ownerID, w.Start, w.End)
}

type UpdateTodoInput struct {
	Title       string
	Description string
	Priority    string
	Section     string
	DueDate     string
}

// Update 只应用传入的非空字段
func (s *TodoService) Update(ctx context.Context, id string, in UpdateTodoInput) (*domain.Todo, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := domain.NewValidationError()
	if in.Title != "" {
		t.Title = in.Title
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Priority != "" {
		p := domain.Priority(in.Priority)
		if !p.Valid() {
			ve.Add("priority", "priority must be one of Low, Medium, Urgent")
		} else {
			t.Priority = p
		}
	}
	if in.Section != "" {
		sec := domain.Section(in.Section)
		if !sec.Valid() {
			ve.Add("section", "section must be one of To do, In Progress, Under Review, Finished")
		} else {
			t.Section = sec
		}
	}
	if !ve.Empty() {
		return nil, ve
	}
	if in.DueDate != "" {
		d, err := time.Parse(DueDateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidDueDate
		}
		t.DueDate = &d
	}

	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Move 只改 section，其余字段不动
func (s *TodoService) Move(ctx context.Context, id, section string) (*domain.Todo, error) {
	sec := domain.Section(section)
	if !sec.Valid() {
		ve := domain.NewValidationError()
		ve.Add("section", "section must be one of To do, In Progress, Under Review, Finished")
		return nil, ve
	}
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Section = sec
	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}

// Counts 八个独立计数，不是互斥分类
func (s *TodoService) Counts(ctx context.Context, ownerID string) (*domain.TodoCounts, error) {
	out := &domain.TodoCounts{}
	var err error
	if out.TodoTasks, err = s.todos.CountBySection(ctx, ownerID, domain.SectionTodo); err != nil {
		return nil, err
	}
	if out.LowPriorityTasks, err = s.todos.CountByPriority(ctx, ownerID, domain.PriorityLow); err != nil {
		return nil, err
	}
	if out.InProgressTasks, err = s.todos.CountBySection(ctx, ownerID, domain.SectionInProgress); err != nil {
		return nil, err
	}
	if out.MediumPriorityCount, err = s.todos.CountByPriority(ctx, ownerID, domain.PriorityMedium); err != nil {
		return nil, err
	}
	if out.UnderReviewCount, err = s.todos.CountBySection(ctx, ownerID, domain.SectionUnderReview); err != nil {
		return nil, err
	}
	if out.UrgentPriorityCount, err = s.todos.CountByPriority(ctx, ownerID, domain.PriorityUrgent); err != nil {
		return nil, err
	}
	if out.FinishedCount, err = s.todos.CountBySection(ctx, ownerID, domain.SectionFinished); err != nil {
		return nil, err
	}
	if out.DueDateTasks, err = s.todos.CountWithDueDate(ctx, ownerID); err != nil {
		return nil, err
	}
	return out, nil
}
