package nurseapi

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"nurse-directory/internal/model"
)

// MockClient serves an in-memory roster for offline/demo use. IDs are
// assigned as max+1 and email/username are unique case-insensitively.
type MockClient struct {
	mu     sync.Mutex
	nurses []model.Nurse
}

// NewMockClient copies roster; pass model.DemoNurses() for the demo set.
func NewMockClient(roster []model.Nurse) *MockClient {
	nurses := make([]model.Nurse, 0, len(roster))
	for _, n := range roster {
		nurses = append(nurses, n.Clone())
	}
	return &MockClient{nurses: nurses}
}

func (m *MockClient) ListAll(ctx context.Context) ([]model.Nurse, error) {
	if err := ctxErr(ctx, "list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Nurse, 0, len(m.nurses))
	for _, n := range m.nurses {
		out = append(out, n.Clone())
	}
	return out, nil
}

func (m *MockClient) Login(ctx context.Context, username, password string) (bool, error) {
	if err := ctxErr(ctx, "login"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.nurses {
		if n.Username == username && n.Password == password {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockClient) Create(ctx context.Context, n model.Nurse) (model.Nurse, error) {
	if err := ctxErr(ctx, "create"); err != nil {
		return model.Nurse{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.conflictLocked(n, 0); err != nil {
		return model.Nurse{}, err
	}

	var maxID int64
	for _, existing := range m.nurses {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	n = n.Clone()
	n.ID = maxID + 1
	m.nurses = append(m.nurses, n)
	return n.Clone(), nil
}

func (m *MockClient) GetByID(ctx context.Context, id int64) (model.Nurse, error) {
	return m.find(ctx, "get", func(n model.Nurse) bool { return n.ID == id })
}

func (m *MockClient) SearchByName(ctx context.Context, name string) (model.Nurse, error) {
	return m.find(ctx, "search name", func(n model.Nurse) bool { return n.Name == name })
}

func (m *MockClient) SearchByUsername(ctx context.Context, username string) (model.Nurse, error) {
	return m.find(ctx, "search user", func(n model.Nurse) bool { return n.Username == username })
}

func (m *MockClient) Update(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error) {
	if err := ctxErr(ctx, "update"); err != nil {
		return model.Nurse{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return model.Nurse{}, &ServerError{StatusCode: http.StatusNotFound}
	}
	if err := m.conflictLocked(n, id); err != nil {
		return model.Nurse{}, err
	}

	n = n.Clone()
	n.ID = id
	n.CreatedAt = m.nurses[idx].CreatedAt
	m.nurses[idx] = n
	return n.Clone(), nil
}

func (m *MockClient) Delete(ctx context.Context, id int64) error {
	if err := ctxErr(ctx, "delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return &ServerError{StatusCode: http.StatusNotFound}
	}
	m.nurses = append(m.nurses[:idx], m.nurses[idx+1:]...)
	return nil
}

func (m *MockClient) find(ctx context.Context, op string, match func(model.Nurse) bool) (model.Nurse, error) {
	if err := ctxErr(ctx, op); err != nil {
		return model.Nurse{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.nurses {
		if match(n) {
			return n.Clone(), nil
		}
	}
	return model.Nurse{}, &ServerError{StatusCode: http.StatusNotFound}
}

func (m *MockClient) indexLocked(id int64) int {
	for i, n := range m.nurses {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// conflictLocked reports a 409 naming the clashing field, email first.
// The record with id exclude is skipped so updates can keep their own
// email and username.
func (m *MockClient) conflictLocked(n model.Nurse, exclude int64) error {
	usernameTaken := false
	for _, existing := range m.nurses {
		if exclude != 0 && existing.ID == exclude {
			continue
		}
		if strings.EqualFold(existing.Email, n.Email) {
			return conflict(ErrEmailTaken)
		}
		if strings.EqualFold(existing.Username, n.Username) {
			usernameTaken = true
		}
	}
	if usernameTaken {
		return conflict(ErrUsernameTaken)
	}
	return nil
}

func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
