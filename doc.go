// Package featurebits 实现对等节点间的特性位协商
//
// 每个节点用两个特性向量声明自己支持的可选协议行为：
//
//   - 全网级（global）：影响整个网络的特性
//   - 连接级（local）：只影响单条连接的特性
//
// 特性 N 占用一对位：2N 为强制形式（"不理解就断开"），
// 2N+1 为建议形式（"不理解也没关系"）。未知的建议位总是被忽略，
// 未知的强制位导致拒绝对端。
//
// # 快速开始
//
//	import "github.com/dep2p/go-featurebits"
//
//	// 纯函数
//	ours := featurebits.RenderLocalFeatures()
//	ok := featurebits.FeaturesSupported(theirs, ours)
//
//	// 完整节点：init 消息交换、判定记录、指标
//	node, err := featurebits.New(
//	    featurebits.WithRegisterer(prometheus.DefaultRegisterer),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	verdict, err := node.Handshake(ctx, peerID, conn)
//	if errors.Is(err, featurebits.ErrIncompatibleFeatures) {
//	    conn.Close()
//	}
//
// # 向量布局
//
// 向量按大端序存储，位索引从最后一个字节的最低位开始计数：
//
//	bit i  →  byte[len-1-i/8] 的第 i%8 位
//
// 设置超出当前长度的位时在高位端前置零字节扩容；读取越界位视为未设置。
//
// # 文件组织
//
//	featurebits/
//	├── doc.go        # 包文档
//	├── version.go    # 版本信息
//	├── features.go   # 纯函数接口
//	├── node.go       # Node 结构、New()、协商方法
//	├── options.go    # Option 函数
//	├── fx.go         # Fx 模块组装
//	└── errors.go     # 公共错误
package featurebits
