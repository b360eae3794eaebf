package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownInput is returned when no callback is bound to an input
	ErrUnknownInput = errors.New("no callback registered for input")
	// ErrInvalidValue is returned when an input value cannot be decoded
	ErrInvalidValue = errors.New("invalid input value")
)

// Dependency names a component property
type Dependency struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

// CallbackFunc computes an output value from the raw JSON value of its input.
// A JSON null means nothing is selected.
type CallbackFunc func(value json.RawMessage) (interface{}, error)

// Callback binds one input to one output
type Callback struct {
	Input  Dependency
	Output Dependency
	Fn     CallbackFunc
}

// Update is the new value of an output after a callback ran
type Update struct {
	Input    string      `json:"input"`
	Output   string      `json:"output"`
	Property string      `json:"property"`
	Value    interface{} `json:"value"`
}

// DispatchHook observes every dispatch
type DispatchHook func(input string, duration time.Duration, err error)

// Registry maps input components to the callback that recomputes their output.
// Registration happens once at startup; dispatch is safe for concurrent use
// after that.
type Registry struct {
	callbacks map[string]Callback
	order     []string
	hooks     []DispatchHook
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		callbacks: make(map[string]Callback),
	}
}

// Register binds fn to input. Each input may drive only one callback.
func (r *Registry) Register(input, output Dependency, fn CallbackFunc) error {
	if input.ID == "" || output.ID == "" {
		return fmt.Errorf("registering callback: input and output ids are required")
	}
	if _, exists := r.callbacks[input.ID]; exists {
		return fmt.Errorf("registering callback: input %q already bound", input.ID)
	}
	r.callbacks[input.ID] = Callback{Input: input, Output: output, Fn: fn}
	r.order = append(r.order, input.ID)
	return nil
}

// OnDispatch adds a hook called after every dispatch
func (r *Registry) OnDispatch(hook DispatchHook) {
	r.hooks = append(r.hooks, hook)
}

// Callbacks returns the registered callbacks in registration order
func (r *Registry) Callbacks() []Callback {
	out := make([]Callback, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.callbacks[id])
	}
	return out
}

// Dispatch runs the callback bound to inputID with value
func (r *Registry) Dispatch(inputID string, value json.RawMessage) (Update, error) {
	start := time.Now()

	update, err := r.dispatch(inputID, value)
	for _, hook := range r.hooks {
		hook(inputID, time.Since(start), err)
	}
	return update, err
}

func (r *Registry) dispatch(inputID string, value json.RawMessage) (Update, error) {
	cb, ok := r.callbacks[inputID]
	if !ok {
		return Update{}, fmt.Errorf("%w: %q", ErrUnknownInput, inputID)
	}

	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}

	out, err := cb.Fn(value)
	if err != nil {
		return Update{}, fmt.Errorf("callback %s -> %s: %w", cb.Input.ID, cb.Output.ID, err)
	}

	return Update{
		Input:    cb.Input.ID,
		Output:   cb.Output.ID,
		Property: cb.Output.Property,
		Value:    out,
	}, nil
}

// Initial runs every callback with nothing selected, in registration order.
// The results seed the page before any user interaction.
func (r *Registry) Initial() ([]Update, error) {
	updates := make([]Update, 0, len(r.order))
	for _, id := range r.order {
		u, err := r.Dispatch(id, nil)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}
