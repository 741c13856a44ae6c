package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas del servicio sobre un registry propio
// (cada router tiene el suyo, así los tests pueden crear varios).
type Metrics struct {
	registry *prometheus.Registry

	PersonsCreated       prometheus.Counter
	VaccinesCreated      prometheus.Counter
	VaccinationsRecorded *prometheus.CounterVec
	DoseRejections       *prometheus.CounterVec
	CardBuildDuration    prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PersonsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_card_persons_created_total",
			Help: "Total number of persons registered",
		}),
		VaccinesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_card_vaccines_created_total",
			Help: "Total number of vaccine definitions created",
		}),
		VaccinationsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vaccination_card_vaccinations_recorded_total",
			Help: "Vaccination records accepted, by dose kind",
		}, []string{"dose"}),
		DoseRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vaccination_card_dose_rejections_total",
			Help: "Doses rejected by the sequencing rules, by rule",
		}, []string{"rule"}),
		CardBuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vaccination_card_card_build_duration_seconds",
			Help:    "Duration of GetCard (fetch + grid build)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncPersonsCreated() {
	if m == nil {
		return
	}
	m.PersonsCreated.Inc()
}

func (m *Metrics) IncVaccinesCreated() {
	if m == nil {
		return
	}
	m.VaccinesCreated.Inc()
}

func (m *Metrics) IncVaccinationRecorded(dose string) {
	if m == nil {
		return
	}
	m.VaccinationsRecorded.WithLabelValues(dose).Inc()
}

func (m *Metrics) IncDoseRejected(rule string) {
	if m == nil {
		return
	}
	m.DoseRejections.WithLabelValues(rule).Inc()
}

// ObserveCardBuild registra la duración desde start.
func (m *Metrics) ObserveCardBuild(start time.Time) {
	if m == nil {
		return
	}
	m.CardBuildDuration.Observe(time.Since(start).Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
