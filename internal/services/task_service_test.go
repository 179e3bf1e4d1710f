package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
)

func newTestTaskService(tasks *fakeTaskRepository) TaskService {
	return NewTaskService(zerolog.Nop(), tasks)
}

func identityWithRole(id string, role models.Role) Identity {
	return Identity{UserID: id, Email: id + "@example.com", Role: role}
}

func TestCreateTaskSetsCreatorAndPendingStatus(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())
	actor := identityWithRole("member-1", models.RoleMember)

	created, err := service.CreateTask(context.Background(), CreateTaskParams{
		Title:       "write report",
		Description: "quarterly numbers",
	}, actor)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.CreatorID != "member-1" {
		t.Fatalf("expected creator member-1, got %q", created.CreatorID)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %q", created.Status)
	}

	fetched, err := service.GetTask(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if fetched.Title != "write report" || fetched.Description != "quarterly numbers" {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
	if fetched.Status != models.StatusPending {
		t.Fatalf("expected pending status after round trip, got %q", fetched.Status)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())

	_, err := service.GetTask(context.Background(), "ghost")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskRoleMatrix(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		actorID string
		allowed bool
	}{
		{"admin not owner", models.RoleAdmin, "other", true},
		{"manager not owner", models.RoleManager, "other", true},
		{"member owner", models.RoleMember, "owner", true},
		{"member not owner", models.RoleMember, "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			repo := newFakeTaskRepository(&models.Task{
				ID:        "task-1",
				CreatorID: "owner",
				Title:     "original",
				Status:    models.StatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			})
			service := newTestTaskService(repo)

			_, err := service.UpdateTask(context.Background(), "task-1", UpdateTaskParams{
				Title:       "changed",
				Description: "changed",
				Status:      models.StatusInProgress,
			}, identityWithRole(tt.actorID, tt.role))

			if tt.allowed && err != nil {
				t.Fatalf("expected update to succeed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestDeleteTaskRoleMatrix(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		actorID string
		allowed bool
	}{
		{"admin not owner", models.RoleAdmin, "other", true},
		{"manager owner", models.RoleManager, "owner", true},
		{"manager not owner", models.RoleManager, "other", false},
		{"member owner", models.RoleMember, "owner", true},
		{"member not owner", models.RoleMember, "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now()
			repo := newFakeTaskRepository(&models.Task{
				ID:        "task-1",
				CreatorID: "owner",
				Title:     "original",
				Status:    models.StatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			})
			service := newTestTaskService(repo)

			err := service.DeleteTask(context.Background(), "task-1",
				identityWithRole(tt.actorID, tt.role))

			if tt.allowed && err != nil {
				t.Fatalf("expected delete to succeed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestUpdateTaskInvalidStatus(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())

	_, err := service.UpdateTask(context.Background(), "task-1", UpdateTaskParams{
		Title:  "changed",
		Status: "cancelled",
	}, identityWithRole("admin-1", models.RoleAdmin))
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Fatalf("got %v, want ErrInvalidTaskStatus", err)
	}
}

func TestUpdateTaskKeepsCreatorAndRefreshesUpdatedAt(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())
	owner := identityWithRole("member-1", models.RoleMember)

	created, err := service.CreateTask(context.Background(), CreateTaskParams{
		Title: "write report",
	}, owner)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	updated, err := service.UpdateTask(context.Background(), created.ID, UpdateTaskParams{
		Title:       "write report",
		Description: "done early",
		Status:      models.StatusDone,
	}, identityWithRole("admin-1", models.RoleAdmin))
	if err != nil {
		t.Fatalf("update task: %v", err)
	}

	if updated.CreatorID != "member-1" {
		t.Fatalf("expected creator to stay member-1, got %q", updated.CreatorID)
	}
	if updated.Status != models.StatusDone {
		t.Fatalf("expected done status, got %q", updated.Status)
	}
	if !updated.UpdatedAt.After(created.CreatedAt) {
		t.Fatalf("expected updated_at (%v) after created_at (%v)",
			updated.UpdatedAt, created.CreatedAt)
	}

	fetched, err := service.GetTask(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if fetched.Status != models.StatusDone {
		t.Fatalf("expected done status after round trip, got %q", fetched.Status)
	}
}

func TestDeleteTaskOwnershipScenario(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())

	memberA := identityWithRole("member-a", models.RoleMember)
	created, err := service.CreateTask(context.Background(), CreateTaskParams{
		Title: "member a's task",
	}, memberA)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	err = service.DeleteTask(context.Background(), created.ID,
		identityWithRole("member-b", models.RoleMember))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("member b delete: got %v, want ErrForbidden", err)
	}

	err = service.DeleteTask(context.Background(), created.ID,
		identityWithRole("manager-1", models.RoleManager))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner manager delete: got %v, want ErrForbidden", err)
	}

	err = service.DeleteTask(context.Background(), created.ID,
		identityWithRole("admin-1", models.RoleAdmin))
	if err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	_, err = service.GetTask(context.Background(), created.ID)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound after delete", err)
	}
}

func TestListTasksReturnsEveryTask(t *testing.T) {
	service := newTestTaskService(newFakeTaskRepository())

	_, err := service.CreateTask(context.Background(), CreateTaskParams{Title: "one"},
		identityWithRole("member-a", models.RoleMember))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	_, err = service.CreateTask(context.Background(), CreateTaskParams{Title: "two"},
		identityWithRole("member-b", models.RoleMember))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Listing is deliberately unfiltered: every authenticated
	// identity sees the whole team's tasks.
	tasks, err := service.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}
