package master

import "log/slog"

// resp builds the master's three-element XML-RPC response convention:
// [code, statusMessage, value].
func resp(code int32, statusMessage string, value any) (any, error) {
	return []any{code, statusMessage, value}, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// afterRegisterNode dispatches a shutdown to a node's previous API when
// registering callerAPI rebound it to a new one, per the node
// re-registration rule in §4.4.
func (m *Master) afterRegisterNode(callerID, previousAPI string, rebound bool) {
	if !rebound {
		return
	}
	m.dispatch.Shutdown(previousAPI, "caller_id "+callerID+" re-registered with a new API")
}

func logTypeMismatch(topic, topicType string) {
	slog.Warn("topic type mismatch on registration", "topic", topic, "type", topicType)
}
