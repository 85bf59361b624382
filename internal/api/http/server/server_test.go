package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenerFunc func(network, addr string) (net.Listener, error)

func (f listenerFunc) Listen(network, addr string) (net.Listener, error) { return f(network, addr) }

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":8080")
	assert.Equal(t, ":8080", s.Address())
}

func TestHTTPServer_StartAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := NewHTTPServer(handler, ":0")

	var gotNetwork, gotAddr string
	sec := listenerFunc(func(network, addr string) (net.Listener, error) {
		gotNetwork, gotAddr = network, addr
		return ln, nil
	})

	done := make(chan error, 1)
	go func() { done <- srv.Start(sec) }()

	url := fmt.Sprintf("http://%s/", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body) == "ok"
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, "tcp", gotNetwork)
	assert.Equal(t, ":0", gotAddr)
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	srv := NewHTTPServer(http.NotFoundHandler(), ":0")
	sec := listenerFunc(func(string, string) (net.Listener, error) {
		return nil, errors.New("address in use")
	})

	err := srv.Start(sec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
