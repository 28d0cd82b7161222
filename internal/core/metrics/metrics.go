package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "featurebits"

// 结果标签值
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Reporter 协商指标记录接口
type Reporter interface {
	// ObserveNegotiation 记录一次命名空间检查结果
	ObserveNegotiation(namespace string, compatible bool)

	// ObserveRejection 记录一次拒绝及其原因
	ObserveRejection(namespace, reason string)

	// ObserveHandshakeDuration 记录一次握手耗时
	ObserveHandshakeDuration(d time.Duration)
}

// Metrics 基于 Prometheus 的协商指标
type Metrics struct {
	negotiations *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	duration     prometheus.Histogram
}

var _ Reporter = (*Metrics)(nil)

// NewMetrics 创建协商指标并注册到 reg
//
// namespace 为空时使用 DefaultNamespace。
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		return nil, fmt.Errorf("metrics: nil registerer")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &Metrics{
		negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "negotiations_total",
			Help:      "Feature vector checks by namespace and result.",
		}, []string{"namespace", "result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected feature vectors by namespace and reason.",
		}, []string{"namespace", "reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handshake_duration_seconds",
			Help:      "Duration of init message exchanges.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		}),
	}

	err := multierr.Combine(
		reg.Register(m.negotiations),
		reg.Register(m.rejections),
		reg.Register(m.duration),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: register collectors: %w", err)
	}
	return m, nil
}

// ObserveNegotiation 记录一次命名空间检查结果
func (m *Metrics) ObserveNegotiation(namespace string, compatible bool) {
	result := ResultRejected
	if compatible {
		result = ResultAccepted
	}
	m.negotiations.WithLabelValues(namespace, result).Inc()
}

// ObserveRejection 记录一次拒绝及其原因
func (m *Metrics) ObserveRejection(namespace, reason string) {
	m.rejections.WithLabelValues(namespace, reason).Inc()
}

// ObserveHandshakeDuration 记录一次握手耗时
func (m *Metrics) ObserveHandshakeDuration(d time.Duration) {
	m.duration.Observe(d.Seconds())
}

// ============================================================================
//                              空实现
// ============================================================================

type nopReporter struct{}

// NewNop 返回不记录任何内容的 Reporter
func NewNop() Reporter {
	return nopReporter{}
}

func (nopReporter) ObserveNegotiation(string, bool)        {}
func (nopReporter) ObserveRejection(string, string)        {}
func (nopReporter) ObserveHandshakeDuration(time.Duration) {}
