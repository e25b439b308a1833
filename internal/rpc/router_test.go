package rpc

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unknownMethodCall = `<?xml version="1.0"?>
<methodCall>
<methodName>someFutureMethod</methodName>
<params><param><value><string>/caller</string></value></param></params>
</methodCall>`

func TestRouterDefaultsUnknownMethodToSuccess(t *testing.T) {
	rt := NewRouter(map[string]Method{})

	req := httptest.NewRequest("POST", "/RPC2", strings.NewReader(unknownMethodCall))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "<i4>1</i4>")
}

func TestRouterKnownSetIncludesEveryRegisteredMethod(t *testing.T) {
	rt := NewRouter(map[string]Method{
		"getUri": func() (any, error) { return []any{1, "", "http://x:1"}, nil },
	})
	_, ok := rt.known["getUri"]
	assert.True(t, ok)
	_, ok = rt.known["notRegistered"]
	assert.False(t, ok)
}
