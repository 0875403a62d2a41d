package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nhle/todoist/internal/model"
)

// ErrTitleRequired rejects a create or update whose trimmed title is empty
// before any remote call is made. The server enforces the same rule; the
// duplication is deliberate so neither side depends on the other catching
// it.
var ErrTitleRequired = errors.New("Title is required")

// State is the client's local projection of the todo collection plus a
// loading flag. It is a derived view of whatever server state has been
// fetched, never a source of truth.
type State struct {
	Todos   []model.Todo
	Loading bool
}

// Remote is the server boundary the cache reconciles against. *Client is
// the production implementation.
type Remote interface {
	GetTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, title, description string) (model.Todo, error)
	UpdateTodo(ctx context.Context, id int64, t model.Todo) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// Notifier receives user-visible warnings when an operation fails. The
// cache is left untouched whenever a warning is raised.
type Notifier interface {
	Warn(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Warn(msg string) { f(msg) }

// Cache holds the local todo projection and keeps it synchronized with the
// server. Mutations are confirmation-first: nothing is applied locally
// until the corresponding remote call succeeds. Overlapping calls are not
// serialized; the last response to arrive wins.
type Cache struct {
	remote   Remote
	notifier Notifier

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// NewCache creates an empty cache. A nil notifier discards warnings.
func NewCache(remote Remote, notifier Notifier) *Cache {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Cache{
		remote:   remote,
		notifier: notifier,
		subs:     make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state, readable at any time.
func (c *Cache) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.state)
}

// Subscribe registers fn to be called with a state copy after every
// transition. The returned function unsubscribes.
func (c *Cache) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// apply computes the next state from the previous one and notifies
// subscribers with copies.
func (c *Cache) apply(update func(State) State) {
	c.mu.Lock()
	c.state = update(c.state)
	next := copyState(c.state)
	fns := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// Load fetches the whole collection and replaces the local todos
// wholesale. On failure the prior todos are kept and a warning is raised.
func (c *Cache) Load(ctx context.Context) error {
	c.apply(func(st State) State {
		st.Loading = true
		return st
	})

	todos, err := c.remote.GetTodos(ctx)
	if err != nil {
		c.apply(func(st State) State {
			st.Loading = false
			return st
		})
		c.notifier.Warn("Error loading todos")
		return fmt.Errorf("loading todos: %w", err)
	}

	c.apply(func(st State) State {
		st.Todos = todos
		st.Loading = false
		return st
	})
	return nil
}

// Create sends a new todo to the server and appends the confirmed record.
// An empty trimmed title is rejected locally without a remote call.
func (c *Cache) Create(ctx context.Context, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		c.notifier.Warn("Title is required")
		return ErrTitleRequired
	}

	created, err := c.remote.CreateTodo(ctx, title, description)
	if err != nil {
		c.notifier.Warn("Error adding todo")
		return fmt.Errorf("adding todo: %w", err)
	}

	c.apply(func(st State) State {
		st.Todos = append(st.Todos, created)
		return st
	})
	return nil
}

// Update sends the todo's fields to the server and replaces the matching
// cache entry with the confirmed record. If the entry is gone by the time
// the response arrives, applying it is a no-op.
func (c *Cache) Update(ctx context.Context, t model.Todo) error {
	if strings.TrimSpace(t.Title) == "" {
		c.notifier.Warn("Title is required")
		return ErrTitleRequired
	}

	updated, err := c.remote.UpdateTodo(ctx, t.ID, t)
	if err != nil {
		c.notifier.Warn("Error updating todo")
		return fmt.Errorf("updating todo %d: %w", t.ID, err)
	}

	c.apply(func(st State) State {
		for i := range st.Todos {
			if st.Todos[i].ID == updated.ID {
				st.Todos[i] = updated
				break
			}
		}
		return st
	})
	return nil
}

// Delete removes the todo on the server, then drops the matching cache
// entry.
func (c *Cache) Delete(ctx context.Context, id int64) error {
	if err := c.remote.DeleteTodo(ctx, id); err != nil {
		c.notifier.Warn("Error deleting todo")
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}

	c.apply(func(st State) State {
		kept := st.Todos[:0:0]
		for _, t := range st.Todos {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		st.Todos = kept
		return st
	})
	return nil
}

// ToggleComplete flips the completed flag of the cached entry and runs the
// regular update transition. Returns model.ErrNotFound when the id is not
// in the cache.
func (c *Cache) ToggleComplete(ctx context.Context, id int64) error {
	var target *model.Todo
	for _, t := range c.Snapshot().Todos {
		if t.ID == id {
			target = &t
			break
		}
	}
	if target == nil {
		return model.ErrNotFound
	}

	target.Completed = !target.Completed
	return c.Update(ctx, *target)
}

func copyState(st State) State {
	out := State{Loading: st.Loading}
	if st.Todos != nil {
		out.Todos = make([]model.Todo, len(st.Todos))
		copy(out.Todos, st.Todos)
	}
	return out
}
