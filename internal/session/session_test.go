package session

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(Middleware("test-secret"))
	engine.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetOrCreateID(c))
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func whoami(t *testing.T, client *http.Client, url string) string {
	t.Helper()

	resp, err := client.Get(url + "/whoami")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestGetOrCreateIDStableWithinSession(t *testing.T) {
	server := newTestServer(t)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	first := whoami(t, client, server.URL)
	second := whoami(t, client, server.URL)

	_, err = uuid.Parse(first)
	require.NoError(t, err, "session id should be a UUID")
	assert.Equal(t, first, second)
}

func TestGetOrCreateIDDistinctAcrossClients(t *testing.T) {
	server := newTestServer(t)

	jarA, err := cookiejar.New(nil)
	require.NoError(t, err)
	jarB, err := cookiejar.New(nil)
	require.NoError(t, err)

	idA := whoami(t, &http.Client{Jar: jarA}, server.URL)
	idB := whoami(t, &http.Client{Jar: jarB}, server.URL)

	assert.NotEqual(t, idA, idB)
}
