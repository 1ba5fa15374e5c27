package viewmodel

import (
	"context"
	"errors"
	"strings"

	"nurse-directory/internal/model"
	"nurse-directory/internal/nurseapi"
	"nurse-directory/internal/state"
)

// Login checks the credentials and emits exactly one LoginResult. Wrong
// credentials, server errors and unreachable backends all produce
// Success=false; callers can't tell them apart.
//
// On success the authenticated nurse is looked up by username into Session.
func (vm *NurseViewModel) Login(ctx context.Context, username, password string) {
	username = strings.TrimSpace(username)

	ok := false
	if username != "" && password != "" {
		rctx, cancel := vm.scope(ctx)
		accepted, err := vm.api.Login(rctx, username, password)
		cancel()
		if err != nil {
			vm.logFailure("login", err)
		}
		ok = err == nil && accepted
	}
	if vm.closed() {
		return
	}

	if !vm.LoginEvents.Emit(LoginResult{Username: username, Success: ok}) {
		vm.log.Warn().Str("user", username).Msg("login event dropped, no reader")
	}
	if ok {
		vm.loadSession(ctx, username)
	}
}

// Logout forgets the authenticated nurse.
func (vm *NurseViewModel) Logout() {
	vm.sessionGen.reset(func() {
		vm.Session.Set(state.Idle[model.Nurse]())
	})
}

func (vm *NurseViewModel) loadSession(ctx context.Context, username string) {
	gen := vm.sessionGen.begin(func() {
		vm.Session.Set(state.Loading[model.Nurse]())
	})

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	n, err := vm.api.SearchByUsername(rctx, username)
	if err != nil {
		vm.logFailure("session", err)
	}
	vm.commit(&vm.sessionGen, gen, func() {
		vm.Session.Set(nurseResult(n, err))
	})
}

// nurseResult maps a single-record response onto an Operation, naming 404s.
func nurseResult(n model.Nurse, err error) state.Operation[model.Nurse] {
	switch {
	case err == nil:
		return state.Success(n)
	case errors.Is(err, nurseapi.ErrNotFound):
		return state.Failure[model.Nurse](MsgNotFound)
	default:
		return state.Failure[model.Nurse](describeError(err))
	}
}
