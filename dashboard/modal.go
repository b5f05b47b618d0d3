package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type ModalState int

const (
	Closed ModalState = iota
	Open
	Submitting
)

func (s ModalState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("ModalState(%d)", int(s))
}

// ErrNotOpen is returned by Submit outside the open state.
var ErrNotOpen = errors.New("modal is not open")

// FormError is a client-side validation failure; nothing was sent.
type FormError struct {
	Missing []string
}

func (e *FormError) Error() string {
	return "please fill in: " + strings.Join(e.Missing, ", ")
}

// Rules are the checks run before a submission leaves the client. The
// server enforces its own.
type Rules struct {
	Required []string
	// MediaOneOf lists keys of which at least one must carry a file or a
	// non-blank URL when creating. Edits keep the stored media.
	MediaOneOf []string
	// MediaLabel names the media field in validation messages.
	MediaLabel string
}

// Modal is the create/edit form for one entity type.
type Modal[T any] struct {
	client *Client
	entity string
	rules  Rules
	list   *ListView[T]
	notify Notifier

	mu     sync.Mutex
	state  ModalState
	id     string
	fields map[string]any
	files  map[string][]File
	err    error
}

// NewModal builds a modal that refreshes list after each successful submit.
func NewModal[T any](client *Client, entity string, rules Rules, list *ListView[T], notify Notifier) *Modal[T] {
	return &Modal[T]{client: client, entity: entity, rules: rules, list: list, notify: notify}
}

// Open starts a create (id == "") or edit with the given initial values.
func (m *Modal[T]) Open(id string, initial map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Open
	m.id = id
	m.err = nil
	m.files = map[string][]File{}
	m.fields = make(map[string]any, len(initial))
	for k, v := range initial {
		m.fields[k] = v
	}
}

// Edit opens the modal pre-filled from an existing entity.
func (m *Modal[T]) Edit(id string, entity T) error {
	b, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.entity, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("encode %s: %w", m.entity, err)
	}
	for _, k := range []string{"id", "createdAt", "updatedAt"} {
		delete(fields, k)
	}
	m.Open(id, fields)
	return nil
}

func (m *Modal[T]) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fields != nil {
		m.fields[key] = value
	}
}

// AttachFile adds an upload under key. Several files may share a key.
func (m *Modal[T]) AttachFile(key, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files != nil {
		m.files[key] = append(m.files[key], File{Name: name, Data: data})
	}
}

// Close discards the form.
func (m *Modal[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state, m.id, m.fields, m.files, m.err = Closed, "", nil, nil, nil
}

func (m *Modal[T]) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Modal[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Field returns the current form value for key.
func (m *Modal[T]) Field(key string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields[key]
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

func (m *Modal[T]) validate() error {
	var missing []string
	for _, k := range m.rules.Required {
		if blank(m.fields[k]) {
			missing = append(missing, k)
		}
	}
	if m.id == "" && len(m.rules.MediaOneOf) > 0 {
		found := false
		for _, k := range m.rules.MediaOneOf {
			if len(m.files[k]) > 0 || !blank(m.fields[k]) {
				found = true
				break
			}
		}
		if !found {
			label := m.rules.MediaLabel
			if label == "" {
				label = m.rules.MediaOneOf[0]
			}
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return &FormError{Missing: missing}
	}
	return nil
}

// Submit validates, sends and on success closes the modal and reloads the
// list. On failure the form stays open and populated.
func (m *Modal[T]) Submit(ctx context.Context) (T, error) {
	var saved T

	m.mu.Lock()
	if m.state != Open {
		m.mu.Unlock()
		return saved, ErrNotOpen
	}
	if err := m.validate(); err != nil {
		m.err = err
		m.mu.Unlock()
		m.notify.Error("Invalid "+m.entity, err)
		return saved, err
	}
	m.state = Submitting
	id := m.id
	fields := make(map[string]any, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}
	files := m.files
	m.mu.Unlock()

	var err error
	if id == "" {
		err = m.client.Create(ctx, m.entity, fields, files, &saved)
	} else {
		err = m.client.Update(ctx, m.entity, id, fields, files, &saved)
	}

	m.mu.Lock()
	if err != nil {
		m.state, m.err = Open, err
		m.mu.Unlock()
		m.notify.Error("Failed to save "+m.entity, err)
		return saved, err
	}
	m.state, m.id, m.fields, m.files, m.err = Closed, "", nil, nil, nil
	m.mu.Unlock()

	if id == "" {
		m.notify.Success("Created successfully")
	} else {
		m.notify.Success("Updated successfully")
	}
	if m.list != nil {
		// the save went through; a failed reload is shown by the list itself
		_ = m.list.Refresh(ctx)
	}
	return saved, nil
}
