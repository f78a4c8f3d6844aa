package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/paneld/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Greet asks the daemon for a greeting.
func (c *Client) Greet(name string) (string, error) {
	payload, err := json.Marshal(GreetPayload{Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to marshal greet payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandGreet, Payload: payload})
	if err != nil {
		return "", err
	}

	var data GreetData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse greet data: %w", err)
	}
	return data.Greeting, nil
}

// CreatePanel asks the daemon to create a new floating panel and returns its
// window id.
func (c *Client) CreatePanel() (string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandCreatePanel})
	if err != nil {
		return "", err
	}

	var data CreatePanelData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse create data: %w", err)
	}
	return data.WindowID, nil
}

// ClosePanel closes the panel with the given window id.
func (c *Client) ClosePanel(windowID string) error {
	payload, err := json.Marshal(ClosePanelPayload{WindowID: windowID})
	if err != nil {
		return fmt.Errorf("failed to marshal close payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandClosePanel, Payload: payload})
	return err
}

// ListPanels returns the tracked panel ids in creation order.
func (c *Client) ListPanels() ([]string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListPanels})
	if err != nil {
		return nil, err
	}

	var data PanelsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse panels data: %w", err)
	}
	return data.Windows, nil
}

// SetPosition moves a panel's top-left corner to (x, y).
func (c *Client) SetPosition(windowID string, x, y float64) error {
	payload, err := json.Marshal(SetPositionPayload{WindowID: windowID, X: x, Y: y})
	if err != nil {
		return fmt.Errorf("failed to marshal position payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetPosition, Payload: payload})
	return err
}

// SetSize resizes a panel.
func (c *Client) SetSize(windowID string, width, height float64) error {
	payload, err := json.Marshal(SetSizePayload{WindowID: windowID, Width: width, Height: height})
	if err != nil {
		return fmt.Errorf("failed to marshal size payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetSize, Payload: payload})
	return err
}

// GetGeometry returns the current geometry of a panel.
func (c *Client) GetGeometry(windowID string) (*GeometryData, error) {
	payload, err := json.Marshal(GetGeometryPayload{WindowID: windowID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geometry payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandGetGeometry, Payload: payload})
	if err != nil {
		return nil, err
	}

	var data GeometryData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse geometry data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// SaveLayout stores the current panel arrangement under name.
func (c *Client) SaveLayout(name string) error {
	payload, err := json.Marshal(LayoutNamePayload{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal layout payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSaveLayout, Payload: payload})
	return err
}

// LoadLayout recreates the panels saved under name and returns their ids.
func (c *Client) LoadLayout(name string) ([]string, error) {
	payload, err := json.Marshal(LayoutNamePayload{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandLoadLayout, Payload: payload})
	if err != nil {
		return nil, err
	}

	var data LoadLayoutData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layout data: %w", err)
	}
	return data.Windows, nil
}

// ListLayouts returns the saved layout names.
func (c *Client) ListLayouts() ([]string, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListLayouts})
	if err != nil {
		return nil, err
	}

	var data LayoutsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layouts data: %w", err)
	}
	return data.Layouts, nil
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
