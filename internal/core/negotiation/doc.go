// Package negotiation 实现连接建立时的特性协商
//
// 每条新连接上双方各发送一条 init 消息，携带全网级与连接级特性向量，
// 收到对端消息后分别用 compat 检查两个命名空间：
//
//	对端全网级向量  → 本地全网级广告向量
//	对端连接级向量  → 本地连接级广告向量
//
// 任一命名空间不兼容即拒绝对端。
//
// # 使用示例
//
//	n, err := negotiation.NewNegotiator(negotiation.DefaultConfig(), capability.Defaults(), nil, nil, nil)
//	if err != nil {
//	    return err
//	}
//	verdict, err := n.Handshake(ctx, peerID, conn)
//	if errors.Is(err, negotiation.ErrIncompatibleFeatures) {
//	    conn.Close()
//	}
//
// # 并发模型
//
// Handshake 每次调用启动两个 goroutine（写出与读取），并在返回前等待两者结束。
// 判定结果写入 compat.VerdictBook，指标写入 metrics.Reporter。
package negotiation
