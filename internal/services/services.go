package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndanylov/taskdeck/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
)

type AuthService interface {
	// Register creates a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and issues a
	// signed access token carrying the user identity.
	//
	// It returns ErrUserAlreadyExists if a user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password and issues
	// a fresh access token.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// ParseAccessToken verifies the token signature and expiry and
	// returns the embedded claims, or jwt.ErrTokenExpired if the
	// token is expired.
	ParseAccessToken(token string) (*AccessTokenClaims, error)
}

type TaskService interface {
	// CreateTask creates a task owned by params.UserID. An absent or
	// empty description is stored as NULL.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns all tasks owned by userID, newest-created first.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask applies only the fields present in params to the task
	// looked up by (params.ID, params.UserID). A nil field is left
	// unchanged.
	//
	// It returns ErrTaskNotFound when the task doesn't exist or is
	// owned by another user, deliberately without distinguishing the
	// two cases.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task looked up by (params.ID, params.UserID).
	// The not-found semantics match UpdateTask.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

// AccessTokenClaims is the payload of an issued bearer token.
type AccessTokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type RegisterParams struct {
	Email    string
	Password string
	Name     *string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User                 *models.User
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description *string
}

// UpdateTaskParams carries partial update fields: a nil pointer means
// "leave unchanged", a non-nil pointer means "set to this value".
type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	Status      *string
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
