package domain

import (
	"context"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityUrgent:
		return true
	}
	return false
}

type Section string

const (
	SectionTodo        Section = "To do"
	SectionInProgress  Section = "In Progress"
	SectionUnderReview Section = "Under Review"
	SectionFinished    Section = "Finished"
)

func (s Section) Valid() bool {
	switch s {
	case SectionTodo, SectionInProgress, SectionUnderReview, SectionFinished:
		return true
	}
	return false
}

type Todo struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Priority    Priority   `gorm:"size:16;not null" json:"priority"`
	Section     Section    `gorm:"size:32;not null" json:"section"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	// OwnerID 可为空：历史数据没有归属
	OwnerID string `gorm:"size:36;index" json:"userId,omitempty"`
	// Version 乐观锁计数，更新时按 (id, version) 比较交换
	Version   int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Todo) TableName() string { return "todos" }

// TodoCounts 八个独立计数，类别之间允许重叠
type TodoCounts struct {
	TodoTasks           int64 `json:"todoTasks"`
	LowPriorityTasks    int64 `json:"lowPriorityTasks"`
	InProgressTasks     int64 `json:"inProgressTasks"`
	MediumPriorityCount int64 `json:"mediumPriorityCount"`
	UnderReviewCount    int64 `json:"underReviewCount"`
	UrgentPriorityCount int64 `json:"urgentPriorityCount"`
	FinishedCount       int64 `json:"finishedCount"`
	DueDateTasks        int64 `json:"dueDateTasks"`
}

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	FindByID(ctx context.Context, id string) (*Todo, error)
	// FindByOwnerCreatedBetween 闭区间过滤：createdAt >= start AND createdAt <= end
	FindByOwnerCreatedBetween(ctx context.Context, ownerID string, start, end time.Time) ([]Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id string) error
	CountBySection(ctx context.Context, ownerID string, s Section) (int64, error)
	CountByPriority(ctx context.Context, ownerID string, p Priority) (int64, error)
	CountWithDueDate(ctx context.Context, ownerID string) (int64, error)
}
