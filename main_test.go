package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "no command", args: nil, wantCode: 1, wantOut: "Usage: employeedir"},
		{name: "help", args: []string{"help"}, wantCode: 0, wantOut: "mirror seed"},
		{name: "version", args: []string{"VERSION"}, wantCode: 0, wantOut: "employeedir version " + cliVersion},
		{name: "unknown", args: []string{"bogus"}, wantCode: 1, wantOut: "Unknown command: bogus"},
		{name: "mirror without subcommand", args: []string{"mirror"}, wantCode: 1, wantOut: "Usage: employeedir"},
		{name: "unknown mirror command", args: []string{"mirror", "drop"}, wantCode: 1, wantOut: "Unknown mirror command: drop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var code int
			out := captureOutput(func() { code = run(tt.args) })
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	// Find an available port.
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	addr := fmt.Sprintf("localhost:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listenAndServe(ctx, addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
