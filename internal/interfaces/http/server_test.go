package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrisk/entity-screening/internal/config"
)

func TestNewServer_AppliesTimeoutDefaults(t *testing.T) {
	s := NewServer(config.ServerConfig{Port: 8080}, http.NotFoundHandler(), nil)

	assert.Equal(t, ":8080", s.srv.Addr)
	assert.Equal(t, 15*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 15*time.Second, s.srv.WriteTimeout)
	assert.Equal(t, 30*time.Second, s.shutdownTimeout)
}

func TestNewServer_ExplicitTimeoutsWin(t *testing.T) {
	s := NewServer(config.ServerConfig{
		Port:            9090,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: time.Second,
	}, http.NotFoundHandler(), nil)

	assert.Equal(t, 5*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.srv.WriteTimeout)
	assert.Equal(t, time.Second, s.shutdownTimeout)
}

func TestServer_HandlerExposed(t *testing.T) {
	h := http.NotFoundHandler()
	s := NewServer(config.ServerConfig{Port: 0}, h, nil)
	assert.NotNil(t, s.Handler())
}

func TestServer_StopBeforeStart(t *testing.T) {
	s := NewServer(config.ServerConfig{Port: 0}, http.NotFoundHandler(), nil)
	require.NoError(t, s.Stop(context.Background()))
}
