package status

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Registry is the central metrics facade for animation telemetry
// Producers cache metric pointers once; hot loops write atomics without locking
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// WriteTo prints every metric as "key value" lines, ints first, each group sorted by key
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var n int64
	var err error
	emit := func(key string, val any) {
		if err != nil {
			return
		}
		var c int
		c, err = fmt.Fprintf(w, "%-28s %v\n", key, val)
		n += int64(c)
	}

	r.Ints.Range(func(key string, v *atomic.Int64) { emit(key, v.Load()) })
	r.Floats.Range(func(key string, v *AtomicFloat) { emit(key, fmt.Sprintf("%.3f", v.Load())) })
	r.Strings.Range(func(key string, v *AtomicString) { emit(key, v.Load()) })
	return n, err
}
