package master

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosmaster-go/rosmaster/internal/registry"
)

type recordedCall struct {
	uri    string
	method string
	args   []any
}

type fakeCaller struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeCaller) Call(uri, method string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{uri: uri, method: method, args: args})
	return []any{1, "", ""}, nil
}

func (f *fakeCaller) callsFor(method string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestMaster(t *testing.T) (*Master, *fakeCaller) {
	t.Helper()
	fake := &fakeCaller{}
	m, err := New("http://127.0.0.1:11311", WithCaller(fake))
	require.NoError(t, err)
	return m, fake
}

// Scenario 1: publisher-before-subscriber.
func TestScenarioPublisherBeforeSubscriber(t *testing.T) {
	m, _ := newTestMaster(t)

	got, err := m.registerPublisher("/talker", "/chatter", "std_msgs/String", "http://a:1")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", []string(nil)}, got)

	got, err = m.registerSubscriber("/listener", "/chatter", "std_msgs/String", "http://b:2")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", []string{"http://a:1"}}, got)

	got, err = m.getSystemState("/x")
	require.NoError(t, err)
	state := got.([]any)[2].([]any)
	assert.Equal(t, []registry.NamedMembers{{Name: "/chatter", Members: []string{"/talker"}}}, state[0])
	assert.Equal(t, []registry.NamedMembers{{Name: "/chatter", Members: []string{"/listener"}}}, state[1])
	assert.Empty(t, state[2])
}

// Scenario 2: subscriber-before-publisher triggers exactly one
// publisherUpdate callback.
func TestScenarioSubscriberBeforePublisherDispatchesCallback(t *testing.T) {
	m, fake := newTestMaster(t)

	got, err := m.registerSubscriber("/listener", "/chatter", "std_msgs/String", "http://b:2")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", []string(nil)}, got)

	got, err = m.registerPublisher("/talker", "/chatter", "std_msgs/String", "http://a:1")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", []string{"http://b:2"}}, got)

	calls := fake.callsFor("publisherUpdate")
	require.Len(t, calls, 1)
	assert.Equal(t, "http://b:2", calls[0].uri)
	assert.Equal(t, []any{"/talker", "/chatter", []string{"http://a:1"}}, calls[0].args)
}

// Scenario 3: node re-binding dispatches exactly one shutdown to the
// previous URL.
func TestScenarioNodeRebindingDispatchesShutdown(t *testing.T) {
	m, fake := newTestMaster(t)

	_, err := m.registerPublisher("/n", "/t", "T", "http://x:1")
	require.NoError(t, err)

	_, err = m.registerPublisher("/n", "/t", "T", "http://x:2")
	require.NoError(t, err)

	got, err := m.lookupNode("/q", "/n")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", "http://x:2"}, got)

	calls := fake.callsFor("shutdown")
	require.Len(t, calls, 1)
	assert.Equal(t, "http://x:1", calls[0].uri)
	assert.Equal(t, "/master", calls[0].args[0])
}

// Scenario 4: setParam on a nested path notifies a deeper subscriber
// with the value now at its own path.
func TestScenarioNestedParamSetNotifiesSubscriber(t *testing.T) {
	m, fake := newTestMaster(t)

	_, err := m.setParam("/n", "/a", map[string]any{"b": map[string]any{"c": int64(7)}})
	require.NoError(t, err)

	got, err := m.subscribeParam("/s", "http://s:1", "/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", int64(7)}, got)

	_, err = m.setParam("/n", "/a/b", map[string]any{"c": int64(9), "d": int64(1)})
	require.NoError(t, err)

	calls := fake.callsFor("paramUpdate")
	require.Len(t, calls, 1)
	assert.Equal(t, "http://s:1", calls[0].uri)
	assert.Equal(t, []any{"/n", "/a/b/c", int64(9)}, calls[0].args)

	got, err = m.getParam("/q", "/a/b/d")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", int64(1)}, got)
}

// Scenario 5: search param.
func TestScenarioSearchParam(t *testing.T) {
	m, _ := newTestMaster(t)

	_, err := m.setParam("/x", "/foo/gain", 3.14)
	require.NoError(t, err)

	got, err := m.searchParam("/foo/bar/baz", "gain")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", "/foo/gain"}, got)
}

// Scenario 6: empty-set cleanup after unregistering the only
// subscriber.
func TestScenarioEmptySetCleanup(t *testing.T) {
	m, _ := newTestMaster(t)

	_, err := m.registerSubscriber("/listener", "/t", "T", "http://b:2")
	require.NoError(t, err)
	_, err = m.unregisterSubscriber("/listener", "/t", "http://b:2")
	require.NoError(t, err)

	got, err := m.getSystemState("/x")
	require.NoError(t, err)
	state := got.([]any)[2].([]any)
	assert.Empty(t, state[1])
}

func TestGetParamMissingReturnsFailureCode(t *testing.T) {
	m, _ := newTestMaster(t)
	got, err := m.getParam("/q", "/nope")
	require.NoError(t, err)
	triple := got.([]any)
	assert.Equal(t, int32(-1), triple[0])
}

func TestUnregisterUnknownSubscriberSucceedsWithZero(t *testing.T) {
	m, _ := newTestMaster(t)
	got, err := m.unregisterSubscriber("/listener", "/t", "http://b:2")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), "", int32(0)}, got)
}

func TestGetParamNamesAcceptsExtraArgument(t *testing.T) {
	m, _ := newTestMaster(t)
	got, err := m.getParamNames("/q", "unexpectedExtraArg")
	require.NoError(t, err)
	triple := got.([]any)
	assert.Equal(t, int32(1), triple[0])
}
