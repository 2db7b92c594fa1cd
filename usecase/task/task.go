// Package task implements task-list operations. Every mutation follows the
// store's read-modify-write discipline: load the user's full list, replace
// one element and write the list back as a single record.
package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// CreateInput carries the fields settable at creation.
type CreateInput struct {
	Title        string
	Category     domain.Category
	Priority     domain.Priority
	Reminder     bool
	ReminderTime int64
}

// Patch lists the mutable task fields. Nil pointers leave the field as is.
type Patch struct {
	Title        *string
	Category     *domain.Category
	Priority     *domain.Priority
	Completed    *bool
	Reminder     *bool
	ReminderTime *int64
}

func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, userID)
}

func (uc *UseCase) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// Create appends a task to the user's list. New tasks start uncompleted with
// an empty subtask list.
func (uc *UseCase) Create(ctx context.Context, userID string, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if input.Category == "" {
		input.Category = domain.CategoryWork
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMid
	}
	if !input.Category.Valid() || !input.Priority.Valid() {
		return nil, domain.ErrInvalidPayload
	}

	task := domain.Task{
		ID:           uuid.NewString(),
		Title:        title,
		Category:     input.Category,
		Priority:     input.Priority,
		Subtasks:     []domain.Subtask{},
		Reminder:     input.Reminder,
		ReminderTime: input.ReminderTime,
		CreatedAt:    uc.now().UnixMilli(),
	}

	tasks, err := uc.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := uc.tasks.Replace(ctx, userID, tasks); err != nil {
		return nil, err
	}

	uc.logger.Debug("task created",
		zap.String("user_id", userID), zap.String("task_id", task.ID))
	return &task, nil
}

// Update applies a field patch to one task.
func (uc *UseCase) Update(ctx context.Context, userID, taskID string, patch Patch) (*domain.Task, error) {
	return uc.mutate(ctx, userID, taskID, func(t *domain.Task) error {
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return domain.ErrInvalidPayload
			}
			t.Title = title
		}
		if patch.Category != nil {
			if !patch.Category.Valid() {
				return domain.ErrInvalidPayload
			}
			t.Category = *patch.Category
		}
		if patch.Priority != nil {
			if !patch.Priority.Valid() {
				return domain.ErrInvalidPayload
			}
			t.Priority = *patch.Priority
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.Reminder != nil {
			t.Reminder = *patch.Reminder
			if !t.Reminder {
				t.ReminderTime = 0
			}
		}
		if patch.ReminderTime != nil {
			t.ReminderTime = *patch.ReminderTime
		}
		return nil
	})
}

// ToggleCompleted flips the completion flag.
func (uc *UseCase) ToggleCompleted(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return uc.mutate(ctx, userID, taskID, func(t *domain.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

// AddSubtask appends a checklist entry to the task.
func (uc *UseCase) AddSubtask(ctx context.Context, userID, taskID, text string) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.mutate(ctx, userID, taskID, func(t *domain.Task) error {
		t.Subtasks = append(t.Subtasks, domain.Subtask{
			ID:   uuid.NewString(),
			Text: text,
		})
		return nil
	})
}

// ToggleSubtask flips one subtask's completion flag.
func (uc *UseCase) ToggleSubtask(ctx context.Context, userID, taskID, subtaskID string) (*domain.Task, error) {
	return uc.mutate(ctx, userID, taskID, func(t *domain.Task) error {
		sub := t.FindSubtask(subtaskID)
		if sub == nil {
			return domain.ErrSubtaskNotFound
		}
		sub.Completed = !sub.Completed
		return nil
	})
}

func (uc *UseCase) mutate(ctx context.Context, userID, taskID string, apply func(*domain.Task) error) (*domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		if err := apply(&tasks[i]); err != nil {
			return nil, err
		}
		if err := uc.tasks.Replace(ctx, userID, tasks); err != nil {
			return nil, err
		}
		return &tasks[i], nil
	}
	return nil, domain.ErrTaskNotFound
}
