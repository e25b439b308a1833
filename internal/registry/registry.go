// Package registry holds the master's state tables: nodes, topic
// types, publishers, subscribers, services, and parameter
// subscriptions. Each table guards itself with its own lock, per the
// concurrency model: handlers take at most one table's write lock at a
// time and never make an outbound RPC while holding one.
package registry

// Registry composes the six independently-locked state tables. Its
// methods are thin pass-throughs; cross-table composition (e.g.
// resolving subscriber node ids into API URLs) is done by callers in
// internal/master, which is the only place that knows the right lock
// order for a given handler.
type Registry struct {
	nodes       *nodeTable
	topics      *topicTable
	publishers  *memberSet
	subscribers *memberSet
	services    *serviceTable
	paramSubs   *paramSubTable
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		nodes:       newNodeTable(),
		topics:      newTopicTable(),
		publishers:  newMemberSet(),
		subscribers: newMemberSet(),
		services:    newServiceTable(),
		paramSubs:   newParamSubTable(),
	}
}

// RegisterNode records callerAPI for callerID, returning the previous
// API and rebound=true if callerID was already registered under a
// different one.
func (r *Registry) RegisterNode(callerID, callerAPI string) (previousAPI string, rebound bool) {
	return r.nodes.Register(callerID, callerAPI)
}

// NodeAPI returns the caller_api recorded for callerID.
func (r *Registry) NodeAPI(callerID string) (string, bool) {
	return r.nodes.API(callerID)
}

// NodeAPIs resolves API URLs for a list of node ids, skipping unknown
// ones.
func (r *Registry) NodeAPIs(callerIDs []string) []string {
	return r.nodes.APIs(callerIDs)
}

// NodesSnapshot returns every registered node, including its
// connection count, for debug introspection.
func (r *Registry) NodesSnapshot() []Node {
	return r.nodes.Snapshot()
}

// SetTopicType records topicType for topic. mismatch is true when a
// different type was already recorded; the call still succeeds.
func (r *Registry) SetTopicType(topic, topicType string) (mismatch bool) {
	return r.topics.SetType(topic, topicType)
}

// TopicType returns the recorded type for topic.
func (r *Registry) TopicType(topic string) (string, bool) {
	return r.topics.Type(topic)
}

// CheckTopicType reports whether topicType conflicts with topic's
// recorded type, without recording anything.
func (r *Registry) CheckTopicType(topic, topicType string) (mismatch bool) {
	return r.topics.CheckType(topic, topicType)
}

// AllTopicTypes returns every (topic, type) pair on file.
func (r *Registry) AllTopicTypes() []TopicType {
	return r.topics.All()
}

// AddPublisher adds callerID to topic's publisher set.
func (r *Registry) AddPublisher(topic, callerID string) bool {
	return r.publishers.Add(topic, callerID)
}

// RemovePublisher drops callerID from topic's publisher set.
func (r *Registry) RemovePublisher(topic, callerID string) bool {
	return r.publishers.Remove(topic, callerID)
}

// Publishers returns the sorted publisher node ids for topic.
func (r *Registry) Publishers(topic string) []string {
	return r.publishers.Members(topic)
}

// PublishedTopics returns every topic with at least one publisher.
func (r *Registry) PublishedTopics() []string {
	return r.publishers.Names()
}

// PublishersSnapshot returns the publishers section of getSystemState.
func (r *Registry) PublishersSnapshot() []NamedMembers {
	return r.publishers.Snapshot()
}

// AddSubscriber adds callerID to topic's subscriber set.
func (r *Registry) AddSubscriber(topic, callerID string) bool {
	return r.subscribers.Add(topic, callerID)
}

// RemoveSubscriber drops callerID from topic's subscriber set.
func (r *Registry) RemoveSubscriber(topic, callerID string) bool {
	return r.subscribers.Remove(topic, callerID)
}

// Subscribers returns the sorted subscriber node ids for topic.
func (r *Registry) Subscribers(topic string) []string {
	return r.subscribers.Members(topic)
}

// SubscribersSnapshot returns the subscribers section of
// getSystemState.
func (r *Registry) SubscribersSnapshot() []NamedMembers {
	return r.subscribers.Snapshot()
}

// AddServiceProvider records callerID as a provider of service.
func (r *Registry) AddServiceProvider(service, callerID, serviceAPI string) {
	r.services.AddProvider(service, callerID, serviceAPI)
}

// RemoveServiceProvider drops callerID as a provider of service.
func (r *Registry) RemoveServiceProvider(service, callerID, serviceAPI string) bool {
	return r.services.RemoveProvider(service, callerID, serviceAPI)
}

// AnyServiceProvider returns one provider's service_api for service.
func (r *Registry) AnyServiceProvider(service string) (string, bool) {
	return r.services.AnyProvider(service)
}

// ServicesSnapshot returns the services section of getSystemState.
func (r *Registry) ServicesSnapshot() []NamedMembers {
	return r.services.Snapshot()
}

// AddParamSubscription adds or replaces the ParamSubscription for
// (nodeID, param).
func (r *Registry) AddParamSubscription(nodeID, param, apiURI string) {
	r.paramSubs.Subscribe(nodeID, param, apiURI)
}

// RemoveParamSubscription removes subscriptions matching apiURI and
// param exactly.
func (r *Registry) RemoveParamSubscription(apiURI, param string) bool {
	return r.paramSubs.Unsubscribe(apiURI, param)
}

// AffectedParamSubscriptions returns every ParamSubscription whose
// param is an ancestor or descendant of key.
func (r *Registry) AffectedParamSubscriptions(key string) []ParamSubscription {
	return r.paramSubs.Affected(key)
}
