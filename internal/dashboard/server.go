package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
	"github.com/pfrederiksen/wc-dashboard/internal/stats"
)

const (
	maxUpdateBody = 64 << 10
	wsWriteWait   = 10 * time.Second
)

// UpdateRequest is a single input change sent by the page
type UpdateRequest struct {
	Input string          `json:"input"`
	Value json.RawMessage `json:"value"`
}

// UpdateResponse carries either an output update or an error
type UpdateResponse struct {
	Input    string      `json:"input"`
	Output   string      `json:"output,omitempty"`
	Property string      `json:"property,omitempty"`
	Value    interface{} `json:"value"`
	Error    string      `json:"error,omitempty"`
}

// Dashboard serves the page and its update endpoints
type Dashboard struct {
	data     *dataset.Dataset
	registry *Registry
	layout   *Component
	initial  []Update
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// New wires the handlers into a fresh registry and precomputes the
// initial outputs. It fails if any callback fails with nothing selected.
func New(ds *dataset.Dataset, log *logger.Logger) (*Dashboard, error) {
	if log == nil {
		log = logger.Default()
	}

	reg := NewRegistry()
	if err := NewHandlers(ds).Register(reg); err != nil {
		return nil, err
	}

	initial, err := reg.Initial()
	if err != nil {
		return nil, fmt.Errorf("computing initial outputs: %w", err)
	}

	return &Dashboard{
		data:     ds,
		registry: reg,
		layout:   NewLayout(ds),
		initial:  initial,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

// Registry exposes the callback registry so callers can add dispatch hooks
func (d *Dashboard) Registry() *Registry {
	return d.registry
}

// Layout returns the widget tree
func (d *Dashboard) Layout() *Component {
	return d.layout
}

// Index renders the dashboard page
func (d *Dashboard) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	err := RenderPage(&buf, Page{
		Title:     "FIFA World Cup Dashboard",
		Root:      d.layout,
		Initial:   d.initial,
		SourceURL: d.data.SourceURL,
		BuiltAt:   d.data.BuiltAt,
	})
	if err != nil {
		d.log.Error("rendering page", nil, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Update handles POST /_dash-update
func (d *Dashboard) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, UpdateResponse{Error: "method not allowed"})
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, UpdateResponse{Error: "invalid request body"})
		return
	}

	resp, err := d.handle(req)
	writeJSON(w, statusFor(err), resp)
}

// WebSocket handles GET /ws. Each text message is an UpdateRequest and
// gets exactly one UpdateResponse. Errors are reported in the response and
// the connection stays open.
func (d *Dashboard) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("websocket upgrade failed", logger.Fields{"remote": r.RemoteAddr, "error": err.Error()})
		return
	}
	defer conn.Close()

	// The hijacked connection keeps the HTTP server's request deadlines
	conn.SetReadDeadline(time.Time{})
	conn.SetReadLimit(maxUpdateBody)

	log := d.log.With(logger.Fields{"remote": r.RemoteAddr})
	log.Debug("websocket connected", nil)

	for {
		var req UpdateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				log.Warn("websocket message too large", logger.Fields{"limit": maxUpdateBody})
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", logger.Fields{"error": err.Error()})
			}
			return
		}

		resp, _ := d.handle(req)
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("websocket write failed", logger.Fields{"error": err.Error()})
			return
		}
	}
}

// Finals handles GET /api/finals
func (d *Dashboard) Finals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Source string        `json:"source"`
		Finals []final.Final `json:"finals"`
	}{Source: d.data.SourceURL, Finals: d.data.Finals.Rows()})
}

// Wins handles GET /api/wins
func (d *Dashboard) Wins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Source string           `json:"source"`
		Wins   []stats.WinCount `json:"wins"`
	}{Source: d.data.SourceURL, Wins: d.data.Wins.Rows()})
}

func (d *Dashboard) handle(req UpdateRequest) (UpdateResponse, error) {
	update, err := d.registry.Dispatch(req.Input, req.Value)
	if err != nil {
		d.log.Warn("callback failed", logger.Fields{"input": req.Input, "error": err.Error()})
		return UpdateResponse{Input: req.Input, Error: err.Error()}, err
	}
	return UpdateResponse{
		Input:    update.Input,
		Output:   update.Output,
		Property: update.Property,
		Value:    update.Value,
	}, nil
}

// statusFor maps a dispatch error to an HTTP status
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownInput),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, final.ErrUnknownYear),
		errors.Is(err, stats.ErrUnknownCountry):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
