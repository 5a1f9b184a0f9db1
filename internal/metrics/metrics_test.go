// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)
	r.ObserveRender("cli", 100, 5*time.Millisecond, nil)
	r.ObserveRender("cli", 100, 5*time.Millisecond, errors.New("boom"))
	r.ObserveRender("http", 10, time.Millisecond, nil)
	r.ObserveHighlight("go", true)
	r.ObserveHighlight("nope", false)
	r.ObserveHighlight("go", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.renders.WithLabelValues("cli", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.renders.WithLabelValues("cli", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.highlighted.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.highlighted.WithLabelValues("false")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 4)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveRender("cli", 1, time.Second, nil)
	r.ObserveHighlight("go", true)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewRecorder(reg).ObserveRender("http", 1, time.Millisecond, nil)
	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `markdown_renders_total{mode="http",result="success"} 1`)
}

func TestServe(t *testing.T) {
	reg := prom.NewRegistry()
	NewRecorder(reg).ObserveRender("watch", 1, time.Millisecond, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Serve(ctx, ln, reg) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `markdown_renders_total{mode="watch",result="success"} 1`)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
