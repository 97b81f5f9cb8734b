package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-proxygate/pkg/types"
)

const namespace = "proxygate"

// 字节方向
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Reporter 指标记录接口
type Reporter interface {
	// RequestSent 记录一个发出的请求包
	RequestSent(protocol types.ProxyProtocol, hasHost bool)

	// RequestDropped 记录一个被丢弃的请求
	RequestDropped()

	// ResponseRelayed 记录一个送回套接字的响应
	ResponseRelayed(final bool)

	// ResponseRejected 记录一个类型不符的回程包
	ResponseRejected()

	// PackageRouted 记录一次组件交付
	PackageRouted(component types.Component)

	// ClientBytes 记录客户端套接字收发字节
	ClientBytes(direction string, n int)
}

// ============================================================================
//                              Collector
// ============================================================================

// Collector 基于 Prometheus 的 Reporter 实现
type Collector struct {
	requests        *prometheus.CounterVec
	requestsNoHost  *prometheus.CounterVec
	requestsDropped prometheus.Counter
	relayed         *prometheus.CounterVec
	rejected        prometheus.Counter
	routed          *prometheus.CounterVec
	clientBytes     *prometheus.CounterVec
}

var _ Reporter = (*Collector)(nil)

// NewCollector 创建并注册指标
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Client request packages handed to the hopper.",
		}, []string{"protocol"}),
		requestsNoHost: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_without_host_total",
			Help:      "Client requests whose target host could not be sniffed.",
		}, []string{"protocol"}),
		requestsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_dropped_total",
			Help:      "Client data dropped because no request payload could be built.",
		}),
		relayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_relayed_total",
			Help:      "Responses relayed back to client sockets.",
		}, []string{"final"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_rejected_total",
			Help:      "Inbound packages dropped because the payload was not a client response.",
		}),
		routed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packages_routed_total",
			Help:      "Packages delivered to local components.",
		}, []string{"component"}),
		clientBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_bytes_total",
			Help:      "Bytes read from and written to client sockets.",
		}, []string{"direction"}),
	}

	for _, col := range []prometheus.Collector{
		c.requests, c.requestsNoHost, c.requestsDropped,
		c.relayed, c.rejected, c.routed, c.clientBytes,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RequestSent 实现 Reporter 接口
func (c *Collector) RequestSent(protocol types.ProxyProtocol, hasHost bool) {
	c.requests.WithLabelValues(protocol.String()).Inc()
	if !hasHost {
		c.requestsNoHost.WithLabelValues(protocol.String()).Inc()
	}
}

// RequestDropped 实现 Reporter 接口
func (c *Collector) RequestDropped() {
	c.requestsDropped.Inc()
}

// ResponseRelayed 实现 Reporter 接口
func (c *Collector) ResponseRelayed(final bool) {
	c.relayed.WithLabelValues(strconv.FormatBool(final)).Inc()
}

// ResponseRejected 实现 Reporter 接口
func (c *Collector) ResponseRejected() {
	c.rejected.Inc()
}

// PackageRouted 实现 Reporter 接口
func (c *Collector) PackageRouted(component types.Component) {
	c.routed.WithLabelValues(component.String()).Inc()
}

// ClientBytes 实现 Reporter 接口
func (c *Collector) ClientBytes(direction string, n int) {
	if n <= 0 {
		return
	}
	c.clientBytes.WithLabelValues(direction).Add(float64(n))
}

// ============================================================================
//                              NopReporter
// ============================================================================

// NopReporter 不记录任何指标
type NopReporter struct{}

var _ Reporter = NopReporter{}

func (NopReporter) RequestSent(types.ProxyProtocol, bool) {}
func (NopReporter) RequestDropped()                       {}
func (NopReporter) ResponseRelayed(bool)                  {}
func (NopReporter) ResponseRejected()                     {}
func (NopReporter) PackageRouted(types.Component)         {}
func (NopReporter) ClientBytes(string, int)               {}
