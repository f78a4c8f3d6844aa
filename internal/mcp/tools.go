package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleGreet(_ context.Context, _ *mcpsdk.CallToolRequest, args GreetInput) (*mcpsdk.CallToolResult, GreetOutput, error) {
	if strings.TrimSpace(args.Name) == "" {
		return nil, GreetOutput{}, fmt.Errorf("name is required")
	}
	greeting, err := s.client.Greet(args.Name)
	if err != nil {
		return nil, GreetOutput{}, err
	}
	return nil, GreetOutput{Greeting: greeting}, nil
}

func (s *Server) handleCreatePanel(_ context.Context, _ *mcpsdk.CallToolRequest, _ CreatePanelInput) (*mcpsdk.CallToolResult, CreatePanelOutput, error) {
	id, err := s.client.CreatePanel()
	if err != nil {
		return nil, CreatePanelOutput{}, err
	}
	return nil, CreatePanelOutput{WindowID: id}, nil
}

func (s *Server) handleClosePanel(_ context.Context, _ *mcpsdk.CallToolRequest, args ClosePanelInput) (*mcpsdk.CallToolResult, ClosePanelOutput, error) {
	if strings.TrimSpace(args.WindowID) == "" {
		return nil, ClosePanelOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.client.ClosePanel(args.WindowID); err != nil {
		return nil, ClosePanelOutput{Closed: false}, err
	}
	return nil, ClosePanelOutput{Closed: true}, nil
}

func (s *Server) handleListPanels(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListPanelsInput) (*mcpsdk.CallToolResult, ListPanelsOutput, error) {
	windows, err := s.client.ListPanels()
	if err != nil {
		return nil, ListPanelsOutput{}, err
	}
	if windows == nil {
		windows = []string{}
	}
	return nil, ListPanelsOutput{Windows: windows}, nil
}

func (s *Server) handleMovePanel(_ context.Context, _ *mcpsdk.CallToolRequest, args MovePanelInput) (*mcpsdk.CallToolResult, MovePanelOutput, error) {
	if strings.TrimSpace(args.WindowID) == "" {
		return nil, MovePanelOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.client.SetPosition(args.WindowID, args.X, args.Y); err != nil {
		return nil, MovePanelOutput{Moved: false}, err
	}
	return nil, MovePanelOutput{Moved: true}, nil
}

func (s *Server) handleResizePanel(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizePanelInput) (*mcpsdk.CallToolResult, ResizePanelOutput, error) {
	if strings.TrimSpace(args.WindowID) == "" {
		return nil, ResizePanelOutput{}, fmt.Errorf("window_id is required")
	}
	if args.Width <= 0 || args.Height <= 0 {
		return nil, ResizePanelOutput{}, fmt.Errorf("width and height must be positive, got %vx%v", args.Width, args.Height)
	}
	if err := s.client.SetSize(args.WindowID, args.Width, args.Height); err != nil {
		return nil, ResizePanelOutput{Resized: false}, err
	}
	return nil, ResizePanelOutput{Resized: true}, nil
}
