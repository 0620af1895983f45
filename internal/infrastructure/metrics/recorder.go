package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/pos-ledger/internal/application/inventory"
	"github.com/jhoicas/pos-ledger/internal/domain"
)

var _ inventory.Recorder = (*Recorder)(nil)

// Recorder publica el resultado de las operaciones del libro de stock como métricas Prometheus.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	units      *prometheus.CounterVec
}

// NewRecorder crea un registro propio con los colectores del proceso y de Go.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "operations_total",
			Help:      "Operaciones del libro de stock por tipo y resultado (OK o código de error).",
		}, []string{"op", "result"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos_ledger",
			Name:      "units_total",
			Help:      "Unidades confirmadas que entraron (in) o salieron (out) del stock.",
		}, []string{"direction"}),
	}
	reg.MustRegister(
		r.operations,
		r.units,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry registro a exponer en /metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) ObserveOperation(op string, err error) {
	r.operations.WithLabelValues(op, domain.ErrorCode(err)).Inc()
}

func (r *Recorder) ObserveUnits(direction string, qty int) {
	r.units.WithLabelValues(direction).Add(float64(qty))
}
