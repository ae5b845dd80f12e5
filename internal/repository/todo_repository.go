package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gotodo/internal/model"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(todo *model.Todo) error {
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("create todo failed: %w", err)
	}
	return nil
}

// ListByUserID returns the owner's todos newest first. IDs are store-assigned
// and monotonic, so id order is creation order.
func (r *TodoRepository) ListByUserID(userID uint) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) GetByIDAndUserID(todoID, userID uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.Where("id = ? AND user_id = ?", todoID, userID).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo failed: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) Update(todo *model.Todo) error {
	if err := r.db.Save(todo).Error; err != nil {
		return fmt.Errorf("update todo failed: %w", err)
	}
	return nil
}

// DeleteByIDAndUserID reports whether a row was actually removed, so callers
// can treat a miss the same as a foreign owner.
func (r *TodoRepository) DeleteByIDAndUserID(todoID, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", todoID, userID).Delete(&model.Todo{})
	if result.Error != nil {
		return false, fmt.Errorf("delete todo failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
