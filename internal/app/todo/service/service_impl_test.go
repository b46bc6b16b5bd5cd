package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	todosvc "github.com/aligntogether/taskhub/internal/app/todo/service"
	taskErrors "github.com/aligntogether/taskhub/internal/domain/task/errors"
	"github.com/aligntogether/taskhub/internal/domain/task/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type todoRepoStub struct {
	todos map[uuid.UUID]model.Todo
	clock time.Time
}

func newTodoRepoStub() *todoRepoStub {
	return &todoRepoStub{
		todos: make(map[uuid.UUID]model.Todo),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *todoRepoStub) CreateTodo(_ context.Context, t model.Todo) (model.Todo, error) {
	r.clock = r.clock.Add(time.Second)
	t.CreatedAt = r.clock
	t.UpdatedAt = r.clock
	r.todos[t.ID] = t
	return t, nil
}

func (r *todoRepoStub) GetTodoByID(_ context.Context, id uuid.UUID) (model.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, taskErrors.ErrNotFound
	}
	return t, nil
}

func (r *todoRepoStub) ListTodosByOwner(_ context.Context, owner uuid.UUID, status *model.Status) ([]model.Todo, error) {
	var out []model.Todo
	for _, t := range r.todos {
		if t.UserID != owner {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *todoRepoStub) UpdateTodo(_ context.Context, t model.Todo) (model.Todo, error) {
	r.clock = r.clock.Add(time.Second)
	t.UpdatedAt = r.clock
	r.todos[t.ID] = t
	return t, nil
}

func (r *todoRepoStub) DeleteTodo(_ context.Context, id uuid.UUID) error {
	if _, ok := r.todos[id]; !ok {
		return taskErrors.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func TestCreate_TrimsTitle(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	todo, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "  Buy milk  "})
	require.NoError(t, err)
	require.Equal(t, "Buy milk", todo.Title)
	require.Equal(t, model.StatusPending, todo.Status)
	require.Equal(t, owner, todo.UserID)
}

func TestCreate_EmptyTitle(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), dto.CreateTodoDTO{Title: ""})
	require.True(t, taskErrors.IsInvalidArgument(err))

	// Whitespace-only collapses to empty after trimming.
	_, err = svc.Create(ctx, uuid.New(), dto.CreateTodoDTO{Title: "   "})
	require.True(t, taskErrors.IsInvalidArgument(err))
}

func TestList_NewestFirst(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: title})
		require.NoError(t, err)
	}

	todos, err := svc.List(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, todos, 3)
	require.Equal(t, "third", todos[0].Title)
	require.Equal(t, "first", todos[2].Title)
}

func TestList_StatusFilter(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	a, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "b"})
	require.NoError(t, err)

	completed := "Completed"
	_, err = svc.Update(ctx, a.ID, owner, dto.UpdateTodoDTO{Status: &completed})
	require.NoError(t, err)

	todos, err := svc.List(ctx, owner, "Completed")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	require.Equal(t, "a", todos[0].Title)

	// "All" is the no-filter sentinel.
	todos, err = svc.List(ctx, owner, "All")
	require.NoError(t, err)
	require.Len(t, todos, 2)
}

func TestList_UnknownFilterRejected(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())

	_, err := svc.List(context.Background(), uuid.New(), "Archived")
	require.True(t, taskErrors.IsInvalidArgument(err))
}

func TestList_ScopedToOwner(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "alice's"})
	require.NoError(t, err)

	todos, err := svc.List(ctx, bob, "")
	require.NoError(t, err)
	require.Empty(t, todos)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	todo, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)

	completed := "Completed"
	updated, err := svc.Update(ctx, todo.ID, owner, dto.UpdateTodoDTO{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, updated.Status)
	require.Equal(t, "Buy milk", updated.Title)
	require.Equal(t, "2 liters", updated.Description)
}

func TestUpdate_BadStatus(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	todo, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "x"})
	require.NoError(t, err)

	bad := "Done"
	_, err = svc.Update(ctx, todo.ID, owner, dto.UpdateTodoDTO{Status: &bad})
	require.True(t, taskErrors.IsInvalidArgument(err))
}

func TestOwnership(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	todo, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "alice's"})
	require.NoError(t, err)

	title := "stolen"
	_, err = svc.Update(ctx, todo.ID, bob, dto.UpdateTodoDTO{Title: &title})
	require.True(t, taskErrors.IsForbidden(err))

	err = svc.Remove(ctx, todo.ID, bob)
	require.True(t, taskErrors.IsForbidden(err))

	// Absence wins over authorship.
	_, err = svc.Update(ctx, uuid.New(), bob, dto.UpdateTodoDTO{Title: &title})
	require.True(t, taskErrors.IsNotFound(err))

	err = svc.Remove(ctx, uuid.New(), bob)
	require.True(t, taskErrors.IsNotFound(err))
}

func TestRemove(t *testing.T) {
	svc := todosvc.New(newTodoRepoStub())
	owner := uuid.New()
	ctx := context.Background()

	todo, err := svc.Create(ctx, owner, dto.CreateTodoDTO{Title: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, todo.ID, owner))

	todos, err := svc.List(ctx, owner, "")
	require.NoError(t, err)
	require.Empty(t, todos)
}
