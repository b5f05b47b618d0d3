package dashboard

import (
	"context"
	"fmt"
	"sync"
)

type ViewState int

const (
	Idle ViewState = iota
	Loading
	Loaded
	ErrorShown
)

func (s ViewState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case ErrorShown:
		return "error"
	}
	return fmt.Sprintf("ViewState(%d)", int(s))
}

// ListView is the table of one entity type on an admin screen. It never
// merges mutations locally; every change is followed by a full reload.
type ListView[T any] struct {
	client *Client
	entity string
	notify Notifier

	mu    sync.Mutex
	state ViewState
	items []T
	err   error
}

func NewListView[T any](client *Client, entity string, notify Notifier) *ListView[T] {
	return &ListView[T]{client: client, entity: entity, notify: notify, items: []T{}}
}

// Load fetches the full list. On failure the list is left empty and the
// error is shown.
func (v *ListView[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = Loading
	v.mu.Unlock()

	items := []T{}
	err := v.client.List(ctx, v.entity, &items)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state, v.items, v.err = ErrorShown, []T{}, err
		v.notify.Error("Failed to load "+v.entity, err)
		return err
	}
	v.state, v.items, v.err = Loaded, items, nil
	return nil
}

// Refresh reloads after a create, update or delete.
func (v *ListView[T]) Refresh(ctx context.Context) error { return v.Load(ctx) }

// Remove deletes one entity and reloads the list on success.
func (v *ListView[T]) Remove(ctx context.Context, id string) error {
	if err := v.client.Delete(ctx, v.entity, id); err != nil {
		v.notify.Error("Failed to delete from "+v.entity, err)
		return err
	}
	v.notify.Success("Deleted successfully")
	return v.Refresh(ctx)
}

func (v *ListView[T]) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ListView[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Items returns a copy of the loaded entities.
func (v *ListView[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.items...)
}
