package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/oplog"
	"github.com/1broseidon/paneld/internal/registry"
	"github.com/1broseidon/paneld/internal/runtimepath"
	"github.com/1broseidon/paneld/internal/store"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	svc          *registry.Service
	hst          host.Host
	layouts      *store.Store
	actions      *oplog.Logger
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(svc *registry.Service, hst host.Host, layouts *store.Store, actions *oplog.Logger, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		svc:        svc,
		hst:        hst,
		layouts:    layouts,
		actions:    actions,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGreet:
		return s.handleGreet(req.Payload)
	case CommandCreatePanel:
		return s.handleCreatePanel()
	case CommandClosePanel:
		return s.handleClosePanel(req.Payload)
	case CommandListPanels:
		return s.handleListPanels()
	case CommandSetPosition:
		return s.handleSetPosition(req.Payload)
	case CommandSetSize:
		return s.handleSetSize(req.Payload)
	case CommandGetGeometry:
		return s.handleGetGeometry(req.Payload)
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSaveLayout:
		return s.handleSaveLayout(req.Payload)
	case CommandLoadLayout:
		return s.handleLoadLayout(req.Payload)
	case CommandListLayouts:
		return s.handleListLayouts()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGreet(payload json.RawMessage) *Response {
	var p GreetPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid greet payload: %v", err))
		}
	}

	resp, _ := NewOKResponse(GreetData{Greeting: registry.Greet(p.Name)})
	return resp
}

func (s *Server) handleCreatePanel() *Response {
	id, err := s.svc.Create()
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	opts := s.svc.Defaults()
	s.actions.Log(oplog.ActionCreate, id, map[string]interface{}{
		"width":  opts.Width,
		"height": opts.Height,
		"x":      opts.X,
		"y":      opts.Y,
	})

	resp, _ := NewOKResponse(CreatePanelData{WindowID: id})
	return resp
}

func (s *Server) handleClosePanel(payload json.RawMessage) *Response {
	var p ClosePanelPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid close payload: %v", err))
	}
	if p.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}

	if err := s.svc.Close(p.WindowID); err != nil {
		return NewErrorResponse(err.Error())
	}

	s.actions.Log(oplog.ActionClose, p.WindowID, nil)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListPanels() *Response {
	windows := s.svc.List()
	s.actions.Log(oplog.ActionList, "", map[string]interface{}{"count": len(windows)})

	resp, _ := NewOKResponse(PanelsData{Windows: windows})
	return resp
}

func (s *Server) handleSetPosition(payload json.RawMessage) *Response {
	var p SetPositionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid position payload: %v", err))
	}
	if p.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}

	if err := s.svc.Reposition(p.WindowID, round(p.X), round(p.Y)); err != nil {
		return NewErrorResponse(err.Error())
	}

	s.actions.Log(oplog.ActionMove, p.WindowID, map[string]interface{}{"x": p.X, "y": p.Y})

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSetSize(payload json.RawMessage) *Response {
	var p SetSizePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid size payload: %v", err))
	}
	if p.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return NewErrorResponse(fmt.Sprintf("size must be positive, got %gx%g", p.Width, p.Height))
	}

	if err := s.svc.Resize(p.WindowID, round(p.Width), round(p.Height)); err != nil {
		return NewErrorResponse(err.Error())
	}

	s.actions.Log(oplog.ActionResize, p.WindowID, map[string]interface{}{"width": p.Width, "height": p.Height})

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetGeometry(payload json.RawMessage) *Response {
	var p GetGeometryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid geometry payload: %v", err))
	}
	if p.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}

	rect, err := s.svc.Geometry(p.WindowID)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(GeometryData{
		X:      rect.X,
		Y:      rect.Y,
		Width:  rect.Width,
		Height: rect.Height,
	})
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		PanelCount:    len(s.svc.List()),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	if displays, err := s.hst.Displays(); err == nil {
		for _, d := range displays {
			status.Displays = append(status.Displays, DisplayInfo{
				ID:     d.ID,
				Name:   d.Name,
				X:      d.Bounds.X,
				Y:      d.Bounds.Y,
				Width:  d.Bounds.Width,
				Height: d.Bounds.Height,
			})
		}
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleSaveLayout(payload json.RawMessage) *Response {
	var p LayoutNamePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid layout payload: %v", err))
	}

	var panels []store.PanelGeometry
	for _, id := range s.svc.List() {
		rect, err := s.svc.Geometry(id)
		if err != nil {
			// Window died between list and geometry; skip it.
			continue
		}
		panels = append(panels, store.PanelGeometry{
			X:      rect.X,
			Y:      rect.Y,
			Width:  rect.Width,
			Height: rect.Height,
		})
	}

	if err := s.layouts.Save(p.Name, panels); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleLoadLayout(payload json.RawMessage) *Response {
	var p LayoutNamePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid layout payload: %v", err))
	}

	panels, err := s.layouts.Load(p.Name)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	created := make([]string, 0, len(panels))
	for _, g := range panels {
		id, err := s.svc.Create()
		if err != nil {
			return NewErrorResponse(fmt.Sprintf("%v (created %d of %d panels)", err, len(created), len(panels)))
		}
		created = append(created, id)

		if err := s.svc.Reposition(id, g.X, g.Y); err != nil {
			return NewErrorResponse(err.Error())
		}
		if err := s.svc.Resize(id, g.Width, g.Height); err != nil {
			return NewErrorResponse(err.Error())
		}
	}

	resp, _ := NewOKResponse(LoadLayoutData{Windows: created})
	return resp
}

func (s *Server) handleListLayouts() *Response {
	names, err := s.layouts.List()
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(LayoutsData{Layouts: names})
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func round(f float64) int {
	return int(math.Round(f))
}
