package services

import (
	"context"
	"errors"
	"time"

	"github.com/danilloubr/workplace-tasks-challenge/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("operation forbidden")
	ErrEmailTaken         = errors.New("email already in use by another account")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrSelfDelete         = errors.New("an admin cannot delete their own account")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrInvalidRole        = errors.New("invalid role")
)

// Identity is the authenticated actor performing an operation, as
// extracted from a verified access token. The role is parsed into the
// closed type at extraction time; a token with an unknown role never
// produces an Identity.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

type AuthService interface {
	// Login authenticates the user by email and password and issues
	// a signed access token.
	//
	// It returns ErrInvalidCredentials both when no user holds the
	// given email and when the password doesn't match, so a caller
	// cannot probe which emails exist.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// ParseAccessToken verifies the token signature, issuer and
	// expiry and returns the identity it binds. An unparsable role
	// claim fails verification.
	ParseAccessToken(token string) (*Identity, error)
}

type UserService interface {
	// GetProfile returns the actor's own record, or ErrUserNotFound
	// if the identity no longer exists in the directory.
	GetProfile(ctx context.Context, actorID string) (*models.User, error)

	// UpdateProfile changes the actor's email after re-verifying the
	// current password. Role and password cannot change through this
	// path.
	//
	// It returns ErrPasswordMismatch if the current password is wrong
	// or ErrEmailTaken if another account already holds the email.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) error

	// ChangePassword re-verifies the current password and replaces
	// the stored hash with a fresh hash of the new password.
	ChangePassword(ctx context.Context, params ChangePasswordParams) error

	// ListUsers returns every user in the directory. Admin only.
	ListUsers(ctx context.Context, actor Identity) ([]*models.User, error)

	// GetUser returns an arbitrary user by id. Admin only.
	GetUser(ctx context.Context, id string, actor Identity) (*models.User, error)

	// CreateUser adds a user to the directory. Admin only.
	CreateUser(ctx context.Context, params CreateUserParams, actor Identity) (*models.User, error)

	// UpdateUser changes an arbitrary user's email, role and
	// optionally password (an empty password leaves the stored hash
	// untouched). Admin only.
	UpdateUser(ctx context.Context, id string, params AdminUpdateUserParams, actor Identity) error

	// DeleteUser removes a user permanently. Admin only. The acting
	// admin may not delete their own account.
	DeleteUser(ctx context.Context, id string, actor Identity) error

	// BootstrapAdmin creates the initial admin account unless the
	// email is already registered. Called once at startup, before the
	// server accepts requests; it bypasses the policy on purpose.
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type TaskService interface {
	// ListTasks returns every task in the system. Any authenticated
	// identity may list; visibility is shared across the team.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask creates a task owned by the actor. The creator is
	// always the authenticated identity, never client input, and the
	// status always starts at pending.
	CreateTask(ctx context.Context, params CreateTaskParams, actor Identity) (*models.Task, error)

	// GetTask returns a task by id, or ErrTaskNotFound.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// UpdateTask overwrites title, description and status after the
	// update policy check. The creator never changes.
	UpdateTask(ctx context.Context, id string, params UpdateTaskParams, actor Identity) (*models.Task, error)

	// DeleteTask removes a task permanently after the delete policy
	// check.
	DeleteTask(ctx context.Context, id string, actor Identity) error
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      string
	AccessToken string
	ExpiresAt   time.Time
}

type UpdateProfileParams struct {
	ActorID         string
	Email           string
	CurrentPassword string
}

type ChangePasswordParams struct {
	ActorID         string
	CurrentPassword string
	NewPassword     string
}

type CreateUserParams struct {
	Email    string
	Password string
	Role     string
}

type AdminUpdateUserParams struct {
	Email    string
	Role     string
	Password string
}

type CreateTaskParams struct {
	Title       string
	Description string
}

type UpdateTaskParams struct {
	Title       string
	Description string
	Status      string
}
