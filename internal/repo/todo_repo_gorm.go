package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskdeck/internal/domain"
)

type TodoRepo struct{ db *gorm.DB }

func NewTodoRepo(db *gorm.DB) *TodoRepo { return &TodoRepo{db: db} }

func (r *TodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TodoRepo) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepo) FindByOwnerCreatedBetween(ctx context.Context, ownerID string, start, end time.Time) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND created_at >= ? AND created_at <= ?", ownerID, start, end).
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

// Update 按 (id, version) 比较交换；0 行受影响说明记录不存在或已被并发修改
func (r *TodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	res := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("id = ? AND version = ?", t.ID, t.Version).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"priority":    t.Priority,
			"section":     t.Section,
			"due_date":    t.DueDate,
			"version":     t.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		cur, err := r.FindByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		return domain.ErrVersionConflict
	}
	t.Version++
	t.UpdatedAt = time.Now()
	return nil
}

func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TodoRepo) CountBySection(ctx context.Context, ownerID string, s domain.Section) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("owner_id = ? AND section = ?", ownerID, s).
		Count(&n).Error
	return n, err
}

func (r *TodoRepo) CountByPriority(ctx context.Context, ownerID string, p domain.Priority) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("owner_id = ? AND priority = ?", ownerID, p).
		Count(&n).Error
	return n, err
}

func (r *TodoRepo) CountWithDueDate(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Todo{}).
		Where("owner_id = ? AND due_date IS NOT NULL", ownerID).
		Count(&n).Error
	return n, err
}
