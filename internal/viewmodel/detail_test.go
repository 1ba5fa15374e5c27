package viewmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nurse-directory/internal/nurseapi"
)

func TestGetByID(t *testing.T) {
	spy := newSpy()
	vm := New(spy)
	defer vm.Close()
	ctx := context.Background()

	vm.GetByID(ctx, 3)
	n, ok := vm.Nurse.Get().Value()
	require.True(t, ok)
	assert.Equal(t, "bob.s", n.Username)

	vm.GetByID(ctx, 404)
	detail := vm.Nurse.Get()
	assert.True(t, detail.IsError())
	assert.Equal(t, MsgNotFound, detail.Message())

	vm.GetByID(ctx, 0)
	assert.Equal(t, MsgMissingID, vm.Nurse.Get().Message())
	assert.Equal(t, 2, spy.count("get"))

	vm.ClearNurseState()
	assert.True(t, vm.Nurse.Get().IsIdle())
}

func TestLookups(t *testing.T) {
	spy := newSpy()
	vm := New(spy)
	defer vm.Close()
	ctx := context.Background()

	vm.LookupByName(ctx, "Emma")
	n, ok := vm.Nurse.Get().Value()
	require.True(t, ok)
	assert.Equal(t, int64(6), n.ID)

	// Exact lookup: a substring is not a match.
	vm.LookupByName(ctx, "Emm")
	assert.Equal(t, MsgNotFound, vm.Nurse.Get().Message())

	vm.LookupByUsername(ctx, "fiona.g")
	n, ok = vm.Nurse.Get().Value()
	require.True(t, ok)
	assert.Equal(t, "Fiona", n.Name)

	vm.LookupByUsername(ctx, " ")
	assert.Equal(t, MsgMissingSearchKey, vm.Nurse.Get().Message())
	assert.Equal(t, 1, spy.count("search user"))
}

func TestLookup_TransportError(t *testing.T) {
	spy := newSpy()
	spy.failWith("get", &nurseapi.TransportError{Op: "get", Err: errors.New("i/o timeout")})
	vm := New(spy)
	defer vm.Close()

	vm.GetByID(context.Background(), 1)
	assert.Equal(t, "connection error: i/o timeout", vm.Nurse.Get().Message())
}

func TestLookup_StaleResponseDoesNotOverwrite(t *testing.T) {
	spy := newSpy()
	release := make(chan struct{})
	spy.on("search name", func(ctx context.Context) error {
		<-release
		return nil
	})
	vm := New(spy)
	defer vm.Close()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		vm.LookupByName(ctx, "Alice")
	}()
	assert.Eventually(t, func() bool { return spy.count("search name") == 1 }, time.Second, 5*time.Millisecond)

	vm.GetByID(ctx, 3)
	close(release)
	<-done

	n, ok := vm.Nurse.Get().Value()
	require.True(t, ok)
	assert.Equal(t, int64(3), n.ID, "the older lookup finished last but must not win")
}
