// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerServesRegisteredCollectors(t *testing.T) {
	r := New()
	r.PublishTotal.Inc()
	r.DecodeTotal.Inc()
	r.DecodeErrorsTotal.WithLabelValues("truncated").Inc()
	r.DispatchTotal.Inc()
	r.EncodeBytes.Observe(128)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"vsd_publish_total 1",
		"vsd_decode_total 1",
		`vsd_decode_errors_total{kind="truncated"} 1`,
		"vsd_dispatch_total 1",
		"vsd_encode_bytes_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q\n%s", want, body)
		}
	}
}

func TestTwoRegistriesDoNotCollide(t *testing.T) {
	a, b := New(), New()
	a.PublishTotal.Inc()
	b.PublishTotal.Inc()
	b.PublishTotal.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "vsd_publish_total 2") {
		t.Errorf("second registry's counter leaked into/out of the first: %s", rec.Body.String())
	}
}
