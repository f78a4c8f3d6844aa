package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/paneld/internal/ipc"
)

const (
	ServerName    = "paneld"
	ServerVersion = "0.1.0"
)

// PanelClient is the subset of the daemon client the MCP tools need.
// *ipc.Client satisfies it; tests inject a fake backed by an in-memory
// registry.
type PanelClient interface {
	Greet(name string) (string, error)
	CreatePanel() (string, error)
	ClosePanel(windowID string) error
	ListPanels() ([]string, error)
	SetPosition(windowID string, x, y float64) error
	SetSize(windowID string, width, height float64) error
}

// Server is the MCP server exposing panel management tools. Every tool
// forwards to the paneld daemon over the unix socket, so the daemon must
// be running for the tools to succeed.
type Server struct {
	mcpServer *mcpsdk.Server
	client    PanelClient
}

// NewServer creates a new MCP server forwarding to the given client.
// Pass nil to use the default daemon socket.
func NewServer(client PanelClient) *Server {
	if client == nil {
		client = ipc.NewClient()
	}

	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "greet",
		Description: "Return a greeting for the given name.",
	}, s.handleGreet)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_floating_panel",
		Description: "Create a new always-on-top floating panel window using the daemon's configured defaults. Returns the window id for future reference.",
	}, s.handleCreatePanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_floating_panel",
		Description: "Close a floating panel window by id. Fails if the window no longer exists.",
	}, s.handleClosePanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_floating_panels",
		Description: "List the ids of all floating panel windows in creation order.",
	}, s.handleListPanels)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_floating_panel",
		Description: "Move a floating panel window to a new position. Coordinates are logical pixels and are rounded to the nearest integer.",
	}, s.handleMovePanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_floating_panel",
		Description: "Resize a floating panel window. Dimensions are logical pixels, rounded to the nearest integer, and must be positive.",
	}, s.handleResizePanel)
}
