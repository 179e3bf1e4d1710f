package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
	"github.com/danilloubr/workplace-tasks-challenge/internal/policy"
	"github.com/danilloubr/workplace-tasks-challenge/internal/repository"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  repository.TaskRepository
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams, actor Identity) (*models.Task, error) {
	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          taskUUID.String(),
		CreatorID:   actor.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("creator_id", task.CreatorID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, params UpdateTaskParams, actor Identity) (*models.Task, error) {
	if !models.ValidStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if !policy.CanUpdateTask(actor.Role, actor.UserID, task.CreatorID) {
		s.logger.Warn().
			Str("task_id", task.ID).
			Str("actor_id", actor.UserID).
			Str("role", actor.Role.String()).
			Msg("update denied by policy")
		return nil, ErrForbidden
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Status = params.Status
	task.UpdatedAt = time.Now()

	err = s.tasks.Update(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("actor_id", actor.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string, actor Identity) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if !policy.CanDeleteTask(actor.Role, actor.UserID, task.CreatorID) {
		s.logger.Warn().
			Str("task_id", task.ID).
			Str("actor_id", actor.UserID).
			Str("role", actor.Role.String()).
			Msg("delete denied by policy")
		return ErrForbidden
	}

	err = s.tasks.Delete(ctx, task.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("actor_id", actor.UserID).
		Msg("deleted task")
	return nil
}
