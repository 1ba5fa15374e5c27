package viewmodel

import (
	"context"

	"nurse-directory/internal/model"
	"nurse-directory/internal/search"
	"nurse-directory/internal/state"
)

// LoadList fetches the roster unless it's already loaded and no write has
// happened since. Concurrent calls share one request, which is not cancelled
// by any single caller; Close still ends it.
func (vm *NurseViewModel) LoadList(ctx context.Context) {
	if vm.List.Get().IsSuccess() && !vm.listStale.Load() {
		return
	}
	shared := context.WithoutCancel(ctx)
	vm.listFlight.Do("list", func() (any, error) {
		vm.fetchList(shared)
		return nil, nil
	})
}

// ReloadList always issues a new request, superseding any in flight.
func (vm *NurseViewModel) ReloadList(ctx context.Context) {
	vm.fetchList(ctx)
}

func (vm *NurseViewModel) fetchList(ctx context.Context) {
	vm.listStale.Store(false)
	gen := vm.listGen.begin(func() {
		vm.List.Set(state.Loading[[]model.Nurse]())
	})

	rctx, cancel := vm.scope(ctx)
	defer cancel()

	nurses, err := vm.api.ListAll(rctx)
	if err != nil {
		vm.logFailure("list", err)
	}

	committed := vm.commit(&vm.listGen, gen, func() {
		if err != nil {
			vm.List.Set(state.Failure[[]model.Nurse](describeError(err)))
			return
		}
		vm.List.Set(state.Success(nurses))
	})
	if committed && err == nil {
		vm.log.Debug().Int("count", len(nurses)).Msg("roster loaded")
		vm.refreshSearch()
	}
}

// roster is the loaded list, or nil when the list isn't in Success.
func (vm *NurseViewModel) roster() []model.Nurse {
	nurses, _ := vm.List.Get().Value()
	return nurses
}

// UpdateSearchQuery filters the loaded roster locally. Exact backend lookups
// are the detail operations (GetByID, LookupByName, LookupByUsername).
func (vm *NurseViewModel) UpdateSearchQuery(query string) {
	vm.Search.Update(func(SearchState) SearchState {
		return SearchState{Query: query, Results: search.FilterNurses(query, vm.roster())}
	})
}

func (vm *NurseViewModel) refreshSearch() {
	vm.Search.Update(func(s SearchState) SearchState {
		s.Results = search.FilterNurses(s.Query, vm.roster())
		return s
	})
}

// SelectNurse holds n as the record picked from a list or search result.
func (vm *NurseViewModel) SelectNurse(n model.Nurse) {
	c := n.Clone()
	vm.Selected.Set(&c)
}

func (vm *NurseViewModel) ClearSelectedNurse() {
	vm.Selected.Set(nil)
}
