package app

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gotodo/internal/model"
	"gotodo/internal/pkg/sanitize"
	"gotodo/internal/repository"
)

const maxTitleLength = 500

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = fmt.Errorf("title must be at most %d characters", maxTitleLength)
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")

	// ErrTodoNotFound is returned both when the todo does not exist and when
	// it belongs to someone else, so ids cannot be probed across accounts.
	ErrTodoNotFound = errors.New("todo not found or access denied")
)

type TodoService struct {
	todoRepo  *repository.TodoRepository
	publisher ActivityPublisher
}

type CreateTodoInput struct {
	UserID uint
	Title  string
}

type UpdateTodoInput struct {
	UserID    uint
	TodoID    uint
	Title     *string
	Completed *bool
}

func NewTodoService(todoRepo *repository.TodoRepository, publisher ActivityPublisher) *TodoService {
	return &TodoService{
		todoRepo:  todoRepo,
		publisher: publisher,
	}
}

func (s *TodoService) Create(input CreateTodoInput) (*model.Todo, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	title := sanitize.Title(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	todo := &model.Todo{
		UserID: input.UserID,
		Title:  title,
	}
	if err := s.todoRepo.Create(todo); err != nil {
		return nil, err
	}

	publishActivity(s.publisher, input.UserID, "todo.created", title)
	return todo, nil
}

func (s *TodoService) List(userID uint) ([]model.Todo, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.todoRepo.ListByUserID(userID)
}

func (s *TodoService) Update(input UpdateTodoInput) (*model.Todo, error) {
	if input.UserID == 0 || input.TodoID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Title == nil && input.Completed == nil {
		return nil, ErrNoFieldsToUpdate
	}

	var title string
	if input.Title != nil {
		title = sanitize.Title(*input.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		if utf8.RuneCountInString(title) > maxTitleLength {
			return nil, ErrTitleTooLong
		}
	}

	todo, err := s.todoRepo.GetByIDAndUserID(input.TodoID, input.UserID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	if input.Title != nil {
		todo.Title = title
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, err
	}

	publishActivity(s.publisher, input.UserID, "todo.updated", todo.Title)
	return todo, nil
}

func (s *TodoService) Delete(userID, todoID uint) error {
	if userID == 0 || todoID == 0 {
		return ErrInvalidInput
	}

	deleted, err := s.todoRepo.DeleteByIDAndUserID(todoID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTodoNotFound
	}

	publishActivity(s.publisher, userID, "todo.deleted", fmt.Sprintf("todo %d", todoID))
	return nil
}
