package dashboard

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func echoCallback(value json.RawMessage) (interface{}, error) {
	return string(value), nil
}

func TestRegistry_Dispatch(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Dependency{ID: "in", Property: "value"}, Dependency{ID: "out", Property: "children"}, echoCallback); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	update, err := reg.Dispatch("in", json.RawMessage(`"x"`))
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if update.Input != "in" || update.Output != "out" || update.Property != "children" {
		t.Errorf("unexpected update routing: %+v", update)
	}
	if update.Value != `"x"` {
		t.Errorf("Value = %v, want %q", update.Value, `"x"`)
	}
}

func TestRegistry_EmptyValueIsNull(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Dependency{ID: "in"}, Dependency{ID: "out"}, echoCallback)

	update, err := reg.Dispatch("in", nil)
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if update.Value != "null" {
		t.Errorf("Value = %v, want null", update.Value)
	}
}

func TestRegistry_UnknownInput(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Dispatch("missing", nil); !errors.Is(err, ErrUnknownInput) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownInput", err)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(Dependency{}, Dependency{ID: "out"}, echoCallback); err == nil {
		t.Error("Register() without input id should fail")
	}
	if err := reg.Register(Dependency{ID: "in"}, Dependency{ID: "out"}, echoCallback); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := reg.Register(Dependency{ID: "in"}, Dependency{ID: "other"}, echoCallback); err == nil {
		t.Error("Register() should reject a second callback on the same input")
	}
}

func TestRegistry_CallbackError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.Register(Dependency{ID: "in"}, Dependency{ID: "out"}, func(json.RawMessage) (interface{}, error) {
		return nil, boom
	})

	if _, err := reg.Dispatch("in", nil); !errors.Is(err, boom) {
		t.Errorf("Dispatch() error = %v, want wrapped boom", err)
	}
}

func TestRegistry_Hooks(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Dependency{ID: "in"}, Dependency{ID: "out"}, echoCallback)

	var calls []string
	var failures int
	reg.OnDispatch(func(input string, d time.Duration, err error) {
		calls = append(calls, input)
		if err != nil {
			failures++
		}
	})

	reg.Dispatch("in", nil)
	reg.Dispatch("missing", nil)

	if len(calls) != 2 || calls[0] != "in" || calls[1] != "missing" {
		t.Errorf("hook calls = %v", calls)
	}
	if failures != 1 {
		t.Errorf("hook saw %d failures, want 1", failures)
	}
}

func TestRegistry_Initial(t *testing.T) {
	reg := NewRegistry()
	if err := NewHandlers(testDataset()).Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	updates, err := reg.Initial()
	if err != nil {
		t.Fatalf("Initial() error: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 initial updates, got %d", len(updates))
	}
	if updates[0].Output != MapGraph || updates[0].Property != "figure" {
		t.Errorf("first update = %+v, want map figure", updates[0])
	}
	if updates[1].Output != WinsDisplay || updates[1].Value != "" {
		t.Errorf("second update = %+v, want empty win count", updates[1])
	}

	cbs := reg.Callbacks()
	if cbs[0].Input.ID != YearDropdown || cbs[1].Input.ID != CountryDropdown {
		t.Errorf("callbacks out of registration order: %+v", cbs)
	}
}
