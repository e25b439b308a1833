// Package callback implements the master's outbound RPC surface: the
// publisherUpdate, paramUpdate, and shutdown calls fired at node APIs
// in reaction to registry and parameter changes. Every call here is
// fire-and-log - a failure is logged and never propagated back to the
// handler that triggered it.
package callback

import (
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Caller makes a single outbound XML-RPC call and returns its decoded
// result. It is satisfied by the default xmlrpcCaller (backed by
// github.com/fetchrobotics/rosgo/xmlrpc) in production, and by a fake
// in tests that need to observe what was dispatched.
type Caller interface {
	Call(uri, method string, args ...any) (any, error)
}

// Dispatcher fans callback RPCs out to node APIs.
type Dispatcher struct {
	caller Caller
}

// New returns a Dispatcher backed by caller. A nil caller defaults to
// the XML-RPC transport.
func New(caller Caller) *Dispatcher {
	if caller == nil {
		caller = xmlrpcCaller{}
	}
	return &Dispatcher{caller: caller}
}

// PublisherUpdate fires publisherUpdate(callerID, topic, publisherAPIs)
// at every target concurrently, and waits for all of them to finish
// before returning, per the fan-out barrier in §5.
func (d *Dispatcher) PublisherUpdate(callerID, topic string, publisherAPIs, targets []string) {
	var g errgroup.Group
	for _, uri := range targets {
		uri := uri
		g.Go(func() error {
			_, err := d.caller.Call(uri, "publisherUpdate", callerID, topic, publisherAPIs)
			logOutcome("publisherUpdate", uri, err)
			return nil
		})
	}
	_ = g.Wait()
}

// ParamUpdateTarget is one subscriber's paramUpdate delivery: the
// subscriber's own subscribed path (which may be an ancestor or
// descendant of the key that was actually written) and the value
// currently at that path.
type ParamUpdateTarget struct {
	URI   string
	Param string
	Value any
}

// ParamUpdate fires paramUpdate(callerID, target.Param, target.Value)
// at every target concurrently, waiting for all to finish.
func (d *Dispatcher) ParamUpdate(callerID string, targets []ParamUpdateTarget) {
	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			_, err := d.caller.Call(target.URI, "paramUpdate", callerID, target.Param, target.Value)
			logOutcome("paramUpdate", target.URI, err)
			return nil
		})
	}
	_ = g.Wait()
}

// Shutdown fires shutdown("/master", reason) at uri and waits for it to
// complete.
func (d *Dispatcher) Shutdown(uri, reason string) {
	if uri == "" {
		return
	}
	_, err := d.caller.Call(uri, "shutdown", "/master", reason)
	logOutcome("shutdown", uri, err)
}

func logOutcome(method, uri string, err error) {
	if err != nil {
		slog.Warn("callback delivery failed", "method", method, "target", uri, "error", err)
		return
	}
	slog.Debug("callback delivered", "method", method, "target", uri)
}
