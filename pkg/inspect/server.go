package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-drift/present/pkg/presenter"
)

// SnapshotProvider returns the current debug tree, or nil when the window
// has no root view. The server calls it between frames, on the HTTP
// goroutine; callers must arrange the single-threaded handoff (the UI loop
// is synchronous, so a handler never races an in-progress pass).
type SnapshotProvider func() *presenter.DebugNode

// maxTreeDepth limits serialization depth to protect against malformed
// trees.
const maxTreeDepth = 500

// Server serves rendered-tree snapshots for inspection tooling.
type Server struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	provider SnapshotProvider
	protocol string
}

// NewServer creates a server over the given snapshot provider.
func NewServer(provider SnapshotProvider) *Server {
	return &Server{provider: provider, protocol: CurrentProtocol}
}

// Start begins listening on the given port (0 for ephemeral) and returns
// the actual port. Starting an already-running server returns its current
// port.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		if s.listener != nil {
			return s.listener.Addr().(*net.TCPAddr).Port, nil
		}
		return port, nil
	}

	// Bind the listener first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("inspect server listen: %w", err)
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/health", s.handleHealth)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
		}
	}()

	return actualPort, nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

// handleTree returns the debug tree as JSON.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	root := s.provider()
	if root == nil {
		http.Error(w, "no rendered tree", http.StatusServiceUnavailable)
		return
	}
	tree := serializeNode(root, 0)

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "ok",
		"protocol": s.protocol,
	})
}

// TreeNode is the JSON-safe serialization of a presenter.DebugNode. Sizes
// can carry Inf from unbounded constraints, so dimensions use SafeFloat.
type TreeNode struct {
	Type     string     `json:"type"`
	ViewID   uint64     `json:"viewId,omitempty"`
	Bounds   SafeBounds `json:"bounds"`
	Children []TreeNode `json:"children,omitempty"`
}

// SafeBounds is a JSON-safe rectangle.
type SafeBounds struct {
	X      SafeFloat `json:"x"`
	Y      SafeFloat `json:"y"`
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// serializeNode converts a DebugNode subtree, clamping depth.
func serializeNode(node *presenter.DebugNode, depth int) TreeNode {
	out := TreeNode{
		Type:   node.Type,
		ViewID: uint64(node.ViewID),
		Bounds: SafeBounds{
			X:      SafeFloat(node.Bounds.Origin.X),
			Y:      SafeFloat(node.Bounds.Origin.Y),
			Width:  SafeFloat(node.Bounds.Size.Width),
			Height: SafeFloat(node.Bounds.Size.Height),
		},
	}
	if depth >= maxTreeDepth {
		return out
	}
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, serializeNode(child, depth+1))
	}
	return out
}
