package callback

import "github.com/fetchrobotics/rosgo/xmlrpc"

// xmlrpcCaller is the production Caller, dialing the node's own
// XML-RPC API for each call the way client_api does in the original
// source (a short-lived client per call; nodes are not expected to
// stay connected between callbacks).
type xmlrpcCaller struct{}

func (xmlrpcCaller) Call(uri, method string, args ...any) (any, error) {
	client, err := xmlrpc.NewClient(uri)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.Call(method, args...)
}
