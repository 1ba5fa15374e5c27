package viewmodel

import (
	"context"
	"sync"

	"nurse-directory/internal/model"
	"nurse-directory/internal/nurseapi"
)

// spyClient wraps the mock client, counting calls per operation and letting
// tests inject failures or block an operation.
type spyClient struct {
	mock *nurseapi.MockClient

	mu    sync.Mutex
	calls map[string]int
	hooks map[string]func(ctx context.Context) error
}

func newSpy() *spyClient {
	return &spyClient{
		mock:  nurseapi.NewMockClient(model.DemoNurses()),
		calls: make(map[string]int),
		hooks: make(map[string]func(ctx context.Context) error),
	}
}

func (s *spyClient) on(op string, hook func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[op] = hook
}

func (s *spyClient) failWith(op string, err error) {
	s.on(op, func(context.Context) error { return err })
}

func (s *spyClient) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *spyClient) enter(ctx context.Context, op string) error {
	s.mu.Lock()
	s.calls[op]++
	hook := s.hooks[op]
	s.mu.Unlock()
	if hook == nil {
		return nil
	}
	return hook(ctx)
}

func (s *spyClient) ListAll(ctx context.Context) ([]model.Nurse, error) {
	if err := s.enter(ctx, "list"); err != nil {
		return nil, err
	}
	return s.mock.ListAll(ctx)
}

func (s *spyClient) Login(ctx context.Context, username, password string) (bool, error) {
	if err := s.enter(ctx, "login"); err != nil {
		return false, err
	}
	return s.mock.Login(ctx, username, password)
}

func (s *spyClient) Create(ctx context.Context, n model.Nurse) (model.Nurse, error) {
	if err := s.enter(ctx, "create"); err != nil {
		return model.Nurse{}, err
	}
	return s.mock.Create(ctx, n)
}

func (s *spyClient) GetByID(ctx context.Context, id int64) (model.Nurse, error) {
	if err := s.enter(ctx, "get"); err != nil {
		return model.Nurse{}, err
	}
	return s.mock.GetByID(ctx, id)
}

func (s *spyClient) SearchByName(ctx context.Context, name string) (model.Nurse, error) {
	if err := s.enter(ctx, "search name"); err != nil {
		return model.Nurse{}, err
	}
	return s.mock.SearchByName(ctx, name)
}

func (s *spyClient) SearchByUsername(ctx context.Context, username string) (model.Nurse, error) {
	if err := s.enter(ctx, "search user"); err != nil {
		return model.Nurse{}, err
	}
	return s.mock.SearchByUsername(ctx, username)
}

func (s *spyClient) Update(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error) {
	if err := s.enter(ctx, "update"); err != nil {
		return model.Nurse{}, err
	}
	return s.mock.Update(ctx, id, n)
}

func (s *spyClient) Delete(ctx context.Context, id int64) error {
	if err := s.enter(ctx, "delete"); err != nil {
		return err
	}
	return s.mock.Delete(ctx, id)
}
