// Package metrics 提供特性协商监控指标
//
// 指标基于 Prometheus client_golang，注册到调用方提供的 Registerer，
// 本模块不启动 HTTP 端点。
//
// # 指标
//
//	<ns>_negotiations_total{namespace,result}      每个命名空间的检查结果
//	<ns>_rejections_total{namespace,reason}        拒绝原因
//	<ns>_handshake_duration_seconds                init 消息交换耗时
//
// 其中 <ns> 默认为 featurebits，namespace 标签取值 local / global，
// result 标签取值 accepted / rejected。
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.NewMetrics(reg, "")
//	if err != nil {
//	    return err
//	}
//	m.ObserveNegotiation("local", true)
//
// 不需要导出指标时使用 metrics.NewNop()。
//
// # Fx 模块
//
//	app := fx.New(
//	    fx.Provide(func() prometheus.Registerer { return reg }),
//	    metrics.Module,
//	)
//
// # 并发安全
//
// Prometheus 收集器本身并发安全，Reporter 的所有实现无需额外同步。
package metrics
