package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGreet       CommandType = "GREET"
	CommandCreatePanel CommandType = "CREATE_PANEL"
	CommandClosePanel  CommandType = "CLOSE_PANEL"
	CommandListPanels  CommandType = "LIST_PANELS"
	CommandSetPosition CommandType = "SET_POSITION"
	CommandSetSize     CommandType = "SET_SIZE"
	CommandGetGeometry CommandType = "GET_GEOMETRY"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandSaveLayout  CommandType = "SAVE_LAYOUT"
	CommandLoadLayout  CommandType = "LOAD_LAYOUT"
	CommandListLayouts CommandType = "LIST_LAYOUTS"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// GreetPayload carries the name to greet.
type GreetPayload struct {
	Name string `json:"name"`
}

// GreetData is the GREET response.
type GreetData struct {
	Greeting string `json:"greeting"`
}

// CreatePanelData is the CREATE_PANEL response.
type CreatePanelData struct {
	WindowID string `json:"window_id"`
}

// ClosePanelPayload names the panel to close.
type ClosePanelPayload struct {
	WindowID string `json:"window_id"`
}

// PanelsData is the LIST_PANELS response: window ids in creation order.
type PanelsData struct {
	Windows []string `json:"windows"`
}

// SetPositionPayload moves a panel's top-left corner. Coordinates are
// logical units; the host rounds to device pixels.
type SetPositionPayload struct {
	WindowID string  `json:"window_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// SetSizePayload resizes a panel in logical units.
type SetSizePayload struct {
	WindowID string  `json:"window_id"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// GetGeometryPayload names the panel to query.
type GetGeometryPayload struct {
	WindowID string `json:"window_id"`
}

// GeometryData is the GET_GEOMETRY response.
type GeometryData struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayInfo describes one display in GET_STATUS output.
type DisplayInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	PanelCount    int           `json:"panel_count"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	DaemonRunning bool          `json:"daemon_running"`
	Displays      []DisplayInfo `json:"displays,omitempty"`
}

// LayoutNamePayload names a stored layout for SAVE_LAYOUT / LOAD_LAYOUT.
type LayoutNamePayload struct {
	Name string `json:"name"`
}

// LoadLayoutData lists the panels created while loading a layout.
type LoadLayoutData struct {
	Windows []string `json:"windows"`
}

// LayoutsData is the LIST_LAYOUTS response.
type LayoutsData struct {
	Layouts []string `json:"layouts"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
