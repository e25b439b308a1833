// Package master is the facade that wires the name resolver, parameter
// tree, registry, and callback dispatcher into the full ROS master RPC
// surface, and binds it to a single HTTP listener.
package master

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/rosmaster-go/rosmaster/internal/callback"
	"github.com/rosmaster-go/rosmaster/internal/diagnostics"
	"github.com/rosmaster-go/rosmaster/internal/logging"
	"github.com/rosmaster-go/rosmaster/internal/paramtree"
	"github.com/rosmaster-go/rosmaster/internal/registry"
	"github.com/rosmaster-go/rosmaster/internal/rpc"
	"github.com/rosmaster-go/rosmaster/internal/util"
)

// Master owns every piece of registry and parameter state plus the
// collaborators (callback dispatcher, diagnostics hub) handlers need to
// react to changes in it.
type Master struct {
	uri       string
	runID     string
	startedAt time.Time

	reg      *registry.Registry
	params   *paramtree.Tree
	dispatch *callback.Dispatcher
	diag     *diagnostics.Hub
	logSvc   *logging.Service

	listener net.Listener
}

// Option customizes New, primarily to inject fakes in tests.
type Option func(*Master)

// WithCaller overrides the outbound callback transport.
func WithCaller(c callback.Caller) Option {
	return func(m *Master) { m.dispatch = callback.New(c) }
}

// WithDiagnosticsHub attaches a diagnostics broadcaster. Without one,
// diagnostics events are silently dropped.
func WithDiagnosticsHub(h *diagnostics.Hub) Option {
	return func(m *Master) { m.diag = h }
}

// WithLoggingService attaches the logging introspection endpoint.
func WithLoggingService(s *logging.Service) Option {
	return func(m *Master) { m.logSvc = s }
}

// New builds a Master bound to masterURI (the value getUri returns) and
// seeds its parameter tree with a freshly generated run_id.
func New(masterURI string, opts ...Option) (*Master, error) {
	runID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, fmt.Errorf("generate run_id: %w", err)
	}

	m := &Master{
		uri:       masterURI,
		runID:     runID,
		startedAt: time.Now(),
		reg:       registry.New(),
		params:    paramtree.NewTree(runID),
		dispatch:  callback.New(nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// RunID returns the run_id seeded into the parameter tree at startup.
func (m *Master) RunID() string { return m.runID }

// Mux builds the full HTTP handler: the XML-RPC method table at "/" and
// "/RPC2", plus the additive debug endpoints.
func (m *Master) Mux() *http.ServeMux {
	router := rpc.NewRouter(m.methods())

	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.Handle("/RPC2", router)
	mux.Handle("/debug/events", m.diagHandler())
	if m.logSvc != nil {
		mux.Handle("/debug/log", m.logSvc)
	}
	mux.Handle("/debug/stats", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		util.GetStats().ServeHTTP(w, r)
	}))
	mux.Handle("/debug/tickers", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		util.GetTickers().ServeHTTP(w, r)
	}))
	mux.Handle("/debug/nodes", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m.reg.NodesSnapshot())
	}))
	return mux
}

func (m *Master) diagHandler() http.Handler {
	if m.diag != nil {
		return m.diag
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "diagnostics not enabled", http.StatusNotImplemented)
	})
}

// ListenAndServe binds addr and serves until ctx is canceled. It also
// starts the heartbeat ticker that drives the /debug/tickers endpoint
// and periodic diagnostics broadcasts.
func (m *Master) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	m.listener = ln

	heartbeat := util.NewTicker("rosmaster-heartbeat", 30*time.Second, func(time.Time) {
		m.emit("heartbeat", fmt.Sprintf("uptime=%s", time.Since(m.startedAt)))
	})
	defer heartbeat.Stop()

	srv := &http.Server{Handler: m.Mux()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("rosmaster listening", "addr", ln.Addr().String(), "uri", m.uri, "run_id", m.runID, "pid", os.Getpid())
	err = srv.Serve(ln)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (m *Master) emit(kind, detail string) {
	m.diag.Broadcast(diagnostics.Event{Kind: kind, Detail: detail, Time: time.Now()})
}
