package metrics_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/axent-pl/jwksverify/common"
	"github.com/axent-pl/jwksverify/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "valid"},
		{err: fmt.Errorf("%w: kid %q", common.ErrKeyNotFoundForKid, "a"), want: "key_not_found_for_kid"},
		{err: common.ErrInvalidSignature, want: "invalid_signature"},
		{err: fmt.Errorf("%w: token", common.ErrMissingParameter), want: "missing_parameter"},
		{err: errors.New("boom"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := metrics.Result(tt.err); got != tt.want {
				t.Errorf("Result(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.ObserveValidation(nil, time.Millisecond)
	r.ObserveValidation(common.ErrInvalidSignature, time.Millisecond)
	r.ObserveValidation(nil, time.Millisecond)
	r.ObserveRefresh(metrics.StatusSuccess)
	r.ObserveFetch(metrics.StatusNotModified)

	if n, err := testutil.GatherAndCount(reg, "jwksverify_validations_total"); err != nil || n != 2 {
		t.Errorf("validations_total series = %d (%v), want 2", n, err)
	}
	if n, err := testutil.GatherAndCount(reg, "jwksverify_key_refreshes_total"); err != nil || n != 1 {
		t.Errorf("key_refreshes_total series = %d (%v), want 1", n, err)
	}
	if n, err := testutil.GatherAndCount(reg, "jwksverify_jwks_fetches_total"); err != nil || n != 1 {
		t.Errorf("jwks_fetches_total series = %d (%v), want 1", n, err)
	}
}

func TestRecorder_Nil(t *testing.T) {
	var r *metrics.Recorder
	r.ObserveValidation(nil, time.Second)
	r.ObserveRefresh(metrics.StatusError)
	r.ObserveFetch(metrics.StatusError)
}
