package master

import (
	"fmt"
	"os"
	"strings"

	"github.com/rosmaster-go/rosmaster/internal/callback"
	"github.com/rosmaster-go/rosmaster/internal/names"
	"github.com/rosmaster-go/rosmaster/internal/paramtree"
	"github.com/rosmaster-go/rosmaster/internal/rpc"
)

// methods returns the full dispatch table, a single map from wire
// method name to handler, served identically at "/" and "/RPC2".
func (m *Master) methods() map[string]rpc.Method {
	return map[string]rpc.Method{
		"registerService":      m.registerService,
		"unregisterService":    m.unregisterService,
		"registerSubscriber":   m.registerSubscriber,
		"unregisterSubscriber": m.unregisterSubscriber,
		"registerPublisher":    m.registerPublisher,
		"unregisterPublisher":  m.unregisterPublisher,
		"lookupNode":           m.lookupNode,
		"lookupService":        m.lookupService,
		"getPublishedTopics":   m.getPublishedTopics,
		"getTopicTypes":        m.getTopicTypes,
		"getSystemState":       m.getSystemState,
		"getUri":               m.getUri,
		"getPid":               m.getPid,
		"deleteParam":          m.deleteParam,
		"setParam":             m.setParam,
		"getParam":             m.getParam,
		"searchParam":          m.searchParam,
		"subscribeParam":       m.subscribeParam,
		"unsubscribeParam":     m.unsubscribeParam,
		"hasParam":             m.hasParam,
		"getParamNames":        m.getParamNames,
		"system.multicall":     m.systemMultiCall,
	}
}

func (m *Master) registerService(callerID, service, serviceAPI, callerAPI string) (any, error) {
	service = names.Resolve(callerID, service)
	prevAPI, rebound := m.reg.RegisterNode(callerID, callerAPI)
	m.afterRegisterNode(callerID, prevAPI, rebound)

	m.reg.AddServiceProvider(service, callerID, serviceAPI)
	m.emit("serviceRegistered", service)
	return resp(1, "", 0)
}

func (m *Master) unregisterService(callerID, service, serviceAPI string) (any, error) {
	service = names.Resolve(callerID, service)
	removed := m.reg.RemoveServiceProvider(service, callerID, serviceAPI)
	m.emit("serviceUnregistered", service)
	return resp(1, "", boolToInt(removed))
}

func (m *Master) registerSubscriber(callerID, topic, topicType, callerAPI string) (any, error) {
	topic = names.Resolve(callerID, topic)
	prevAPI, rebound := m.reg.RegisterNode(callerID, callerAPI)
	m.afterRegisterNode(callerID, prevAPI, rebound)

	// Subscribing never records a topic's type, only the first publish
	// does (see registerPublisher); this only compares against
	// whatever type is already on file and warns on a mismatch.
	if mismatch := m.reg.CheckTopicType(topic, topicType); mismatch {
		logTypeMismatch(topic, topicType)
	}
	m.reg.AddSubscriber(topic, callerID)

	pubAPIs := m.reg.NodeAPIs(m.reg.Publishers(topic))
	m.emit("subscriberRegistered", topic)
	return resp(1, "", pubAPIs)
}

func (m *Master) unregisterSubscriber(callerID, topic, callerAPI string) (any, error) {
	topic = names.Resolve(callerID, topic)
	removed := m.reg.RemoveSubscriber(topic, callerID)
	m.emit("subscriberUnregistered", topic)
	return resp(1, "", boolToInt(removed))
}

func (m *Master) registerPublisher(callerID, topic, topicType, callerAPI string) (any, error) {
	topic = names.Resolve(callerID, topic)
	prevAPI, rebound := m.reg.RegisterNode(callerID, callerAPI)
	m.afterRegisterNode(callerID, prevAPI, rebound)

	if mismatch := m.reg.SetTopicType(topic, topicType); mismatch {
		logTypeMismatch(topic, topicType)
	}
	m.reg.AddPublisher(topic, callerID)

	pubAPIs := m.reg.NodeAPIs(m.reg.Publishers(topic))
	subAPIs := m.reg.NodeAPIs(m.reg.Subscribers(topic))

	m.dispatch.PublisherUpdate(callerID, topic, pubAPIs, subAPIs)
	m.emit("publisherRegistered", topic)
	return resp(1, "", subAPIs)
}

func (m *Master) unregisterPublisher(callerID, topic, callerAPI string) (any, error) {
	topic = names.Resolve(callerID, topic)
	removed := m.reg.RemovePublisher(topic, callerID)
	m.emit("publisherUnregistered", topic)
	return resp(1, "", boolToInt(removed))
}

func (m *Master) lookupNode(callerID, nodeName string) (any, error) {
	api, ok := m.reg.NodeAPI(nodeName)
	if !ok {
		return resp(0, fmt.Sprintf("node [%s] is not registered", nodeName), "")
	}
	return resp(1, "", api)
}

func (m *Master) lookupService(callerID, service string) (any, error) {
	service = names.Resolve(callerID, service)
	api, ok := m.reg.AnyServiceProvider(service)
	if !ok {
		return resp(0, fmt.Sprintf("no provider for service [%s]", service), "")
	}
	return resp(1, "", api)
}

func (m *Master) getPublishedTopics(callerID, subgraph string) (any, error) {
	if subgraph != "" {
		subgraph = names.Resolve(callerID, subgraph)
	}

	var out [][2]string
	for _, topic := range m.reg.PublishedTopics() {
		if subgraph != "" && !strings.HasPrefix(topic, subgraph) {
			continue
		}
		topicType, _ := m.reg.TopicType(topic)
		out = append(out, [2]string{topic, topicType})
	}
	return resp(1, "", out)
}

func (m *Master) getTopicTypes(callerID string) (any, error) {
	return resp(1, "", m.reg.AllTopicTypes())
}

func (m *Master) getSystemState(callerID string) (any, error) {
	state := []any{
		m.reg.PublishersSnapshot(),
		m.reg.SubscribersSnapshot(),
		m.reg.ServicesSnapshot(),
	}
	return resp(1, "", state)
}

func (m *Master) getUri(callerID string) (any, error) {
	return resp(1, "", m.uri)
}

func (m *Master) getPid(callerID string) (any, error) {
	return resp(1, "", os.Getpid())
}

func (m *Master) deleteParam(callerID, key string) (any, error) {
	key = names.Resolve(callerID, key)
	m.params.Delete(paramtree.SplitPath(key))
	m.emit("paramDeleted", key)
	return resp(1, "", 0)
}

func (m *Master) setParam(callerID, key string, value any) (any, error) {
	key = names.Resolve(callerID, key)
	m.params.Set(paramtree.SplitPath(key), value)

	var targets []callback.ParamUpdateTarget
	for _, sub := range m.reg.AffectedParamSubscriptions(key) {
		v, ok := m.params.Get(paramtree.SplitPath(sub.Param))
		if !ok {
			continue
		}
		targets = append(targets, callback.ParamUpdateTarget{URI: sub.APIURI, Param: sub.Param, Value: v})
	}
	m.dispatch.ParamUpdate(callerID, targets)
	m.emit("paramSet", key)
	return resp(1, "", 0)
}

func (m *Master) getParam(callerID, key string) (any, error) {
	key = names.Resolve(callerID, key)
	v, ok := m.params.Get(paramtree.SplitPath(key))
	if !ok {
		return resp(-1, fmt.Sprintf("Parameter [%s] is not set", key), 0)
	}
	return resp(1, "", v)
}

func (m *Master) searchParam(callerID, key string) (any, error) {
	return resp(1, "", paramtree.SearchParam(m.params, callerID, key))
}

func (m *Master) subscribeParam(callerID, callerAPI, key string) (any, error) {
	key = names.Resolve(callerID, key)
	prevAPI, rebound := m.reg.RegisterNode(callerID, callerAPI)
	m.afterRegisterNode(callerID, prevAPI, rebound)

	m.reg.AddParamSubscription(callerID, key, callerAPI)

	v, ok := m.params.Get(paramtree.SplitPath(key))
	if !ok {
		v = ""
	}
	return resp(1, "", v)
}

func (m *Master) unsubscribeParam(callerID, callerAPI, key string) (any, error) {
	key = names.Resolve(callerID, key)
	removed := m.reg.RemoveParamSubscription(callerAPI, key)
	return resp(1, "", boolToInt(removed))
}

func (m *Master) hasParam(callerID, key string) (any, error) {
	key = names.Resolve(callerID, key)
	return resp(1, "", m.params.Has(paramtree.SplitPath(key)))
}

// getParamNames historically takes only caller_id, but some callers
// pass a second positional argument; accept either arity per §9.
func (m *Master) getParamNames(callerID string, _ ...any) (any, error) {
	return resp(1, "", m.params.Keys())
}

func (m *Master) systemMultiCall(_ ...any) (any, error) {
	return resp(1, "", []any{})
}
