package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/unisql/unisql/observability"
)

func TestOperationObserverCounts(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	o := NewOperationObserver(m, "")

	o.ObserveOperation(observability.OperationContext{
		Component: "driver",
		Operation: "execute",
		Duration:  5 * time.Millisecond,
		Size:      3,
	})
	o.ObserveOperation(observability.OperationContext{
		Component: "driver",
		Operation: "execute",
		Duration:  time.Millisecond,
		Error:     errors.New("boom"),
		Size:      -1,
	})
	o.ObserveOperation(observability.OperationContext{
		Component: "driver",
		Operation: "transaction",
		Duration:  time.Millisecond,
		Size:      -1,
	})

	if got := testutil.ToFloat64(o.operations.WithLabelValues("driver", "execute")); got != 2 {
		t.Errorf("execute operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(o.failures.WithLabelValues("driver", "execute")); got != 1 {
		t.Errorf("execute failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.operations.WithLabelValues("driver", "transaction")); got != 1 {
		t.Errorf("transaction operations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(o.failures.WithLabelValues("driver", "transaction")); got != 0 {
		t.Errorf("transaction failures = %v, want 0", got)
	}
}

func TestOperationMetricsCarryServiceLabel(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "billing"})
	o := NewOperationObserver(m, "")

	o.ObserveOperation(observability.OperationContext{
		Component: "driver",
		Operation: "execute",
		Size:      -1,
	})

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gathering: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != "unisql_operations_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "service" && label.GetValue() == "billing" {
					return
				}
			}
		}
		t.Fatal("operations counter gathered without the service label")
	}
	t.Fatal("operations counter not found in gathered families")
}

func TestOperationObserverRegistersOnce(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	_ = NewOperationObserver(m, "app")

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	_ = NewOperationObserver(m, "app")
}
