package viewmodel

import (
	"context"
	"strings"

	"nurse-directory/internal/model"
	"nurse-directory/internal/state"
)

// GetByID loads one nurse into the Nurse container.
func (vm *NurseViewModel) GetByID(ctx context.Context, id int64) {
	if id <= 0 {
		vm.failNurse(MsgMissingID)
		return
	}
	vm.lookup(ctx, "get", func(ctx context.Context) (model.Nurse, error) {
		return vm.api.GetByID(ctx, id)
	})
}

// LookupByName is an exact-name backend lookup.
func (vm *NurseViewModel) LookupByName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		vm.failNurse(MsgMissingSearchKey)
		return
	}
	vm.lookup(ctx, "search name", func(ctx context.Context) (model.Nurse, error) {
		return vm.api.SearchByName(ctx, name)
	})
}

// LookupByUsername is an exact-username backend lookup.
func (vm *NurseViewModel) LookupByUsername(ctx context.Context, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		vm.failNurse(MsgMissingSearchKey)
		return
	}
	vm.lookup(ctx, "search user", func(ctx context.Context) (model.Nurse, error) {
		return vm.api.SearchByUsername(ctx, username)
	})
}

// ClearNurseState returns the detail container to idle and drops any
// response still in flight.
func (vm *NurseViewModel) ClearNurseState() {
	vm.nurseGen.reset(func() {
		vm.Nurse.Set(state.Idle[model.Nurse]())
	})
}

func (vm *NurseViewModel) failNurse(msg string) {
	vm.nurseGen.reset(func() {
		vm.Nurse.Set(state.Failure[model.Nurse](msg))
	})
}

func (vm *NurseViewModel) lookup(ctx context.Context, op string, call func(context.Context) (model.Nurse, error)) {
	gen := vm.nurseGen.begin(func() {
		vm.Nurse.Set(state.Loading[model.Nurse]())
	})

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	n, err := call(rctx)
	if err != nil {
		vm.logFailure(op, err)
	}
	vm.commit(&vm.nurseGen, gen, func() {
		vm.Nurse.Set(nurseResult(n, err))
	})
}
