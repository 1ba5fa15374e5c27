package nurseapi

import (
	"context"

	"nurse-directory/internal/model"
)

// Client is the typed surface over the nurse/ endpoints.
// Every call is a single request/response with no retries.
type Client interface {
	ListAll(ctx context.Context) ([]model.Nurse, error)
	// Login reports whether the backend accepted the credentials.
	Login(ctx context.Context, username, password string) (bool, error)
	Create(ctx context.Context, n model.Nurse) (model.Nurse, error)
	GetByID(ctx context.Context, id int64) (model.Nurse, error)
	// SearchByName is an exact backend lookup, not a substring filter.
	SearchByName(ctx context.Context, name string) (model.Nurse, error)
	SearchByUsername(ctx context.Context, username string) (model.Nurse, error)
	Update(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error)
	Delete(ctx context.Context, id int64) error
}

// LoginRequest is the body of POST nurse/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
