// Package rpc wraps the XML-RPC transport: a Router that dispatches by
// method name using github.com/fetchrobotics/rosgo/xmlrpc, the same
// package and Handler/Method idiom used by the node implementations
// this master talks to.
package rpc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/fetchrobotics/rosgo/xmlrpc"
)

// Method is the handler type xmlrpc.Handler dispatches on. Each entry
// in a method map may have its own concrete argument signature - the
// underlying library decodes positional XML-RPC parameters by
// reflecting on it, the same way the retrieval pack's node
// implementations build their `map[string]xmlrpc.Method` tables.
type Method = xmlrpc.Method

// NewRouter builds an http.Handler that dispatches methods by name to
// the given table. Method names absent from the table get the default
// "debug" response the spec requires, rather than a transport fault:
// xmlrpc.Handler has no notion of an unknown-method default, so Router
// peeks the envelope's methodName with encoding/xml before handing the
// (still-intact) request body to the real handler.
func NewRouter(methods map[string]Method) *Router {
	known := make(map[string]struct{}, len(methods))
	for name := range methods {
		known[name] = struct{}{}
	}
	return &Router{known: known, handler: xmlrpc.NewHandler(methods)}
}

// Router is an http.Handler implementing the fallback described above.
type Router struct {
	known   map[string]struct{}
	handler http.Handler
}

type methodCallEnvelope struct {
	XMLName    xml.Name `xml:"methodCall"`
	MethodName string   `xml:"methodName"`
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var env methodCallEnvelope
	if err := xml.Unmarshal(body, &env); err == nil {
		if _, ok := rt.known[env.MethodName]; !ok {
			writeDebugResponse(w)
			return
		}
	}
	rt.handler.ServeHTTP(w, r)
}

const debugResponseBody = `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><i4>1</i4></value>
<value><string></string></value>
<value><string></string></value>
</data></array></value></param></params></methodResponse>`

func writeDebugResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/xml")
	_, err := fmt.Fprint(w, debugResponseBody)
	if err != nil {
		return
	}
}
