// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	vsdcore "github.com/signaltree/vsd-core"
	"github.com/signaltree/vsd-core/internal/metrics"
)

type nopTransport struct{}

func (nopTransport) Transmit(tag uint32, payload []byte) error { return nil }

func buildServer(t *testing.T) (*Server, *mux.Router) {
	t.Helper()
	ctx := vsdcore.NewContext("Vehicle")
	root := ctx.Root()
	if _, err := ctx.AddLeaf(root, "Speed", 101, vsdcore.ElementSensor, vsdcore.KindUint16, vsdcore.LeafSpec{}); err != nil {
		t.Fatalf("AddLeaf: %v", err)
	}
	ctx.Finalize()

	speed, err := ctx.LookupByPath("Vehicle.Speed")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if err := speed.SetUint16(42); err != nil {
		t.Fatalf("SetUint16: %v", err)
	}

	dist := vsdcore.NewDistributor(ctx, nopTransport{})
	reg := metrics.New()
	dist.Metrics = reg
	srv := New(dist, reg)

	router := mux.NewRouter()
	srv.Register(router)
	return srv, router
}

func TestHandleByPath(t *testing.T) {
	_, router := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/signal/path/Vehicle.Speed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var view SignalView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Path != "Vehicle.Speed" || view.ID != 101 {
		t.Errorf("view = %+v", view)
	}
}

func TestHandleByPathNotFound(t *testing.T) {
	_, router := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/signal/path/Vehicle.Nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == "" {
		t.Error("ErrorResponse.Error is empty")
	}
}

func TestHandleByID(t *testing.T) {
	_, router := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/signal/id/101", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePublish(t *testing.T) {
	_, router := buildServer(t)

	req := httptest.NewRequest(http.MethodPost, "/publish/Vehicle.Speed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsMounted(t *testing.T) {
	_, router := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
