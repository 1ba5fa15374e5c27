package viewmodel

import (
	"context"

	"nurse-directory/internal/model"
	"nurse-directory/internal/state"
)

// UpdateNurse replaces every mutable field of n.ID. On success the detail,
// selected and session records are refreshed only if they already hold
// that nurse; an idle, loading or failed detail is left alone.
func (vm *NurseViewModel) UpdateNurse(ctx context.Context, n model.Nurse) {
	n = n.Normalized()

	if n.ID <= 0 {
		vm.failUpdate(MsgMissingID)
		return
	}
	if field := requireFields(
		[2]string{"name", n.Name},
		[2]string{"surname", n.Surname},
		[2]string{"email", n.Email},
		[2]string{"username", n.Username},
		[2]string{"password", n.Password},
	); field != "" {
		vm.failUpdate(MsgRequiredFields)
		return
	}

	gen := vm.updateGen.begin(func() {
		vm.Update.Set(state.Loading[model.Nurse]())
	})

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	updated, err := vm.api.Update(rctx, n.ID, n)
	if err != nil {
		vm.logFailure("update", err)
	}

	committed := vm.commit(&vm.updateGen, gen, func() {
		if err != nil {
			vm.Update.Set(state.Failure[model.Nurse](describeError(err)))
			return
		}
		vm.Update.Set(state.Success(updated))
	})
	if !committed || err != nil {
		return
	}

	vm.listStale.Store(true)
	vm.nurseGen.replace(func() bool {
		if cur, ok := vm.Nurse.Get().Value(); !ok || cur.ID != updated.ID {
			return false
		}
		vm.Nurse.Set(state.Success(updated))
		return true
	})
	vm.Selected.Update(func(cur *model.Nurse) *model.Nurse {
		if cur == nil || cur.ID != updated.ID {
			return cur
		}
		c := updated.Clone()
		return &c
	})
	vm.sessionGen.replace(func() bool {
		if cur, ok := vm.Session.Get().Value(); !ok || cur.ID != updated.ID {
			return false
		}
		vm.Session.Set(state.Success(updated))
		return true
	})
}

// DeleteNurse removes id from the backend. The list is not edited locally;
// it's refetched on the next LoadList.
func (vm *NurseViewModel) DeleteNurse(ctx context.Context, id int64) {
	if id <= 0 {
		vm.deleteGen.reset(func() {
			vm.Delete.Set(state.Failure[int64](MsgMissingID))
		})
		return
	}

	gen := vm.deleteGen.begin(func() {
		vm.Delete.Set(state.Loading[int64]())
	})

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	err := vm.api.Delete(rctx, id)
	if err != nil {
		vm.logFailure("delete", err)
	}

	committed := vm.commit(&vm.deleteGen, gen, func() {
		if err != nil {
			vm.Delete.Set(state.Failure[int64](describeError(err)))
			return
		}
		vm.Delete.Set(state.Success(id))
	})
	if !committed || err != nil {
		return
	}

	vm.listStale.Store(true)
	vm.Selected.Update(func(cur *model.Nurse) *model.Nurse {
		if cur != nil && cur.ID == id {
			return nil
		}
		return cur
	})
	vm.sessionGen.replace(func() bool {
		if cur, ok := vm.Session.Get().Value(); !ok || cur.ID != id {
			return false
		}
		vm.Session.Set(state.Idle[model.Nurse]())
		return true
	})
}

func (vm *NurseViewModel) ClearUpdateState() {
	vm.updateGen.reset(func() {
		vm.Update.Set(state.Idle[model.Nurse]())
	})
}

func (vm *NurseViewModel) ClearDeleteState() {
	vm.deleteGen.reset(func() {
		vm.Delete.Set(state.Idle[int64]())
	})
}

func (vm *NurseViewModel) failUpdate(msg string) {
	vm.updateGen.reset(func() {
		vm.Update.Set(state.Failure[model.Nurse](msg))
	})
}
