package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
	"github.com/aligntogether/taskhub/internal/client/api"
	"github.com/aligntogether/taskhub/internal/client/session"
)

// App is the terminal client: the session context plus the todo views.
type App struct {
	api     *api.Client
	session *session.Manager
	reader  *bufio.Reader
	out     io.Writer

	// Cached list state for the current filter. List responses carry a
	// sequence number so a slow response cannot overwrite newer state.
	mu          sync.Mutex
	todos       []dto.TodoResponse
	filter      string
	listSeq     uint64
	lastApplied uint64
}

func NewApp(apiClient *api.Client, sess *session.Manager) *App {
	return &App{
		api:     apiClient,
		session: sess,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Startup hydrates the persisted session and verifies the stored token
// against the server. Any failure clears the session state entirely.
func (a *App) Startup(ctx context.Context) error {
	if err := a.session.Hydrate(ctx); err != nil {
		return err
	}
	if !a.session.LoggedIn() {
		return nil
	}

	if a.session.Expired() {
		a.printf("Session expired due to inactivity, please log in again.\n")
		return a.session.Clear(ctx)
	}

	if _, err := a.api.Verify(ctx, a.session.Token()); err != nil {
		return a.session.Clear(ctx)
	}

	a.session.StartWatcher(ctx, func() {
		a.printf("\nLogged out after %s of inactivity.\n", session.InactivityTimeout)
		_ = a.session.Clear(context.Background())
	})
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email := a.promptLine("Email: ")
	password := a.promptLine("Password (min 6 chars): ")
	if email == "" || password == "" {
		a.printf("Email and password are required.\n")
		return nil
	}

	if err := a.api.Register(ctx, email, password); err != nil {
		return a.report(ctx, err)
	}
	a.printf("Registered. Now log in.\n")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email := a.promptLine("Email: ")
	password := a.promptLine("Password: ")
	if email == "" || password == "" {
		a.printf("Email and password are required.\n")
		return nil
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, err)
	}

	if err := a.session.Begin(ctx, resp.Token, resp.User); err != nil {
		return err
	}
	a.session.StartWatcher(ctx, func() {
		a.printf("\nLogged out after %s of inactivity.\n", session.InactivityTimeout)
		_ = a.session.Clear(context.Background())
	})

	a.printf("Logged in as %s.\n", resp.User.Email)
	return a.List(ctx, "")
}

// RefreshToken rolls the 24h token window. The previous token is not
// revoked server-side; it simply ages out.
func (a *App) RefreshToken(ctx context.Context) error {
	resp, err := a.api.Refresh(ctx, a.session.Token())
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.session.SetToken(ctx, resp.Token); err != nil {
		return err
	}
	a.printf("Token refreshed.\n")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.StopWatcher()
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.todos = nil
	a.filter = ""
	a.mu.Unlock()
	a.printf("Logged out.\n")
	return nil
}

// List fetches the owned todos, optionally filtered by status, and renders
// them. Stale responses (an older fetch finishing after a newer one) are
// discarded instead of applied.
func (a *App) List(ctx context.Context, filter string) error {
	a.mu.Lock()
	a.listSeq++
	seq := a.listSeq
	a.filter = filter
	a.mu.Unlock()

	todos, err := a.api.ListTodos(ctx, a.session.Token(), filter)
	if err != nil {
		return a.report(ctx, err)
	}

	if a.applyList(seq, todos) {
		a.render()
	}
	return nil
}

// applyList installs a list response unless a newer one already landed.
func (a *App) applyList(seq uint64, todos []dto.TodoResponse) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if seq < a.lastApplied {
		return false
	}
	a.lastApplied = seq
	a.todos = todos
	return true
}

func (a *App) Add(ctx context.Context) error {
	title := a.promptLine("Title: ")
	description := a.promptLine("Description (optional): ")

	todo, err := a.api.CreateTodo(ctx, a.session.Token(), dto.CreateTodoDTO{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return a.report(ctx, err)
	}

	// Optimistic local update: newest first, no re-fetch.
	a.mu.Lock()
	a.todos = append([]dto.TodoResponse{todo}, a.todos...)
	a.mu.Unlock()

	a.render()
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	title := a.promptLine("New title (blank to keep): ")
	description := a.promptLine("New description (blank to keep): ")

	var patch dto.UpdateTodoDTO
	if title != "" {
		patch.Title = &title
	}
	if description != "" {
		patch.Description = &description
	}

	return a.patchTodo(ctx, id, patch)
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	return a.patchTodo(ctx, id, dto.UpdateTodoDTO{Status: &status})
}

func (a *App) Remove(ctx context.Context, id string) error {
	full, ok := a.resolveID(id)
	if !ok {
		a.printf("No such todo: %s\n", id)
		return nil
	}

	if err := a.api.DeleteTodo(ctx, a.session.Token(), full); err != nil {
		return a.report(ctx, err)
	}

	a.mu.Lock()
	kept := a.todos[:0]
	for _, t := range a.todos {
		if t.ID != full {
			kept = append(kept, t)
		}
	}
	a.todos = kept
	a.mu.Unlock()

	a.render()
	return nil
}

func (a *App) patchTodo(ctx context.Context, id string, patch dto.UpdateTodoDTO) error {
	full, ok := a.resolveID(id)
	if !ok {
		a.printf("No such todo: %s\n", id)
		return nil
	}

	updated, err := a.api.UpdateTodo(ctx, a.session.Token(), full, patch)
	if err != nil {
		return a.report(ctx, err)
	}

	a.mu.Lock()
	for i, t := range a.todos {
		if t.ID == updated.ID {
			a.todos[i] = updated
			break
		}
	}
	a.mu.Unlock()

	a.render()
	return nil
}

// resolveID matches a full id or an unambiguous prefix against the cached list.
func (a *App) resolveID(id string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var match string
	for _, t := range a.todos {
		if t.ID == id {
			return id, true
		}
		if len(id) >= 4 && len(t.ID) > len(id) && t.ID[:len(id)] == id {
			if match != "" {
				return "", false
			}
			match = t.ID
		}
	}
	return match, match != ""
}

func (a *App) render() {
	a.mu.Lock()
	todos := a.todos
	filter := a.filter
	a.mu.Unlock()

	if filter == "" {
		a.printf("Todos (%d):\n", len(todos))
	} else {
		a.printf("Todos [%s] (%d):\n", filter, len(todos))
	}
	for _, t := range todos {
		mark := " "
		if t.Status == "Completed" {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s  %s", mark, t.ID[:8], t.Title)
		if t.Description != "" {
			line += "  - " + t.Description
		}
		a.printf("%s\n", line)
	}
}

// report prints an API failure. A 401 means the session is over: clear it
// and return to the anonymous prompt rather than showing an error.
func (a *App) report(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		a.printf("Session is no longer valid, please log in again.\n")
		a.session.StopWatcher()
		return a.session.Clear(ctx)
	}
	a.printf("Error: %v\n", err)
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
