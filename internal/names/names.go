// Package names implements the ROS graph resource name resolution rules
// used by every master RPC handler before it touches the registry or the
// parameter tree.
package names

import "strings"

// Resolve turns key into a fully-qualified graph resource name relative to
// callerID, the caller_id of the node that supplied it.
//
//   - an empty key resolves to the empty string
//   - a key beginning with "/" is already global and is returned unchanged
//   - a key beginning with "~" is private: it is rooted under callerID
//   - any other key is relative: it is rooted under callerID's parent
//     namespace
func Resolve(callerID, key string) string {
	switch {
	case key == "":
		return ""
	case strings.HasPrefix(key, "/"):
		return key
	case strings.HasPrefix(key, "~"):
		return callerID + "/" + key[1:]
	default:
		ns, ok := parentNamespace(callerID)
		if !ok {
			return key
		}
		return ns + "/" + key
	}
}

// parentNamespace returns callerID with its final "/"-delimited segment
// removed. ok is false when callerID has no "/" at all, in which case it
// has no parent namespace.
func parentNamespace(callerID string) (ns string, ok bool) {
	idx := strings.LastIndex(callerID, "/")
	if idx < 0 {
		return "", false
	}
	return callerID[:idx], true
}
