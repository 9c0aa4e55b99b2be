package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	LogsReceived Counter
	LogsEvicted  Counter

	HTTPRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := newCounter(name, help, labels)
	prometheus.MustRegister(c.counter)
	return c
}

func newCounter(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logvault",
			Name:      name,
			Help:      help,
		}, labels),
	}
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

const (
	logsReceivedName = "logs_received_total"
	logsReceivedHelp = "Number of log records accepted into the store"
	logsEvictedName  = "logs_evicted_total"
	logsEvictedHelp  = "Number of log records removed by the retention sweep"
	httpRequestsName = "http_requests_total"
	httpRequestsHelp = "Number of log API requests"
)

func New() *Counters {
	return &Counters{
		LogsReceived: NewCappedCounter(NewPrometheusCounter(logsReceivedName, logsReceivedHelp, []string{"service"}), MaxServiceLabels),
		LogsEvicted:  NewPrometheusCounter(logsEvictedName, logsEvictedHelp, nil),
		HTTPRequests: NewPrometheusCounter(httpRequestsName, httpRequestsHelp, []string{"handler", "status"}),
	}
}

// NewTestCounters registers on a private registry so tests can build counters repeatedly.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()

	logsReceived := newCounter(logsReceivedName, logsReceivedHelp, []string{"service"})
	logsEvicted := newCounter(logsEvictedName, logsEvictedHelp, nil)
	httpRequests := newCounter(httpRequestsName, httpRequestsHelp, []string{"handler", "status"})

	reg.MustRegister(logsReceived.counter)
	reg.MustRegister(logsEvicted.counter)
	reg.MustRegister(httpRequests.counter)

	return &Counters{
		LogsReceived: NewCappedCounter(logsReceived, MaxServiceLabels),
		LogsEvicted:  logsEvicted,
		HTTPRequests: httpRequests,
	}
}
