package featurebits

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/negotiation"
	"github.com/dep2p/go-featurebits/internal/protocol/initmsg"
	"github.com/dep2p/go-featurebits/pkg/lib/log"
)

var logger = log.Logger("featurebits")

const (
	// startTimeout Fx 应用启动超时
	startTimeout = 10 * time.Second

	// stopTimeout Fx 应用停止超时
	stopTimeout = 10 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型
// ════════════════════════════════════════════════════════════════════════════

// Verdict 一次协商的判定
type Verdict = negotiation.Verdict

// VerdictRecord 对端最近一次判定记录
type VerdictRecord = compat.Record

// InitMessage init 消息
type InitMessage = initmsg.Message

// Node 特性协商节点
//
// 持有本地能力表、协商器与判定记录簿。所有方法并发安全。
type Node struct {
	app *fx.App

	negotiator *negotiation.Negotiator
	tables     capability.Tables
	book       *compat.VerdictBook

	mu     sync.RWMutex
	closed bool
}

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建并启动节点
//
// 示例：
//
//	node, err := featurebits.New(
//	    featurebits.WithConfigFile("featurebits.toml"),
//	    featurebits.WithRegisterer(prometheus.DefaultRegisterer),
//	)
func New(opts ...Option) (*Node, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	node := &Node{}
	app, err := buildFxApp(o, node)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	node.app = app

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start fx app: %w", err)
	}

	logger.Debug("节点已创建",
		"local", node.negotiator.LocalFeatures().String(),
		"global", node.negotiator.GlobalFeatures().String())
	return node, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              广告向量
// ════════════════════════════════════════════════════════════════════════════

// LocalFeatures 返回本节点连接级广告向量
func (n *Node) LocalFeatures() Vector {
	return n.negotiator.LocalFeatures()
}

// GlobalFeatures 返回本节点全网级广告向量
func (n *Node) GlobalFeatures() Vector {
	return n.negotiator.GlobalFeatures()
}

// InitMessage 返回本节点的 init 消息
func (n *Node) InitMessage() InitMessage {
	return n.negotiator.InitMessage()
}

// Supports 本节点能力表是否支持指定位
func (n *Node) Supports(global bool, bit uint) bool {
	if global {
		return n.tables.Global.Supported(bit)
	}
	return n.tables.Local.Supported(bit)
}

// ════════════════════════════════════════════════════════════════════════════
//                              协商
// ════════════════════════════════════════════════════════════════════════════

// Evaluate 判定对端 init 消息
func (n *Node) Evaluate(peer string, remote InitMessage) (Verdict, error) {
	if n.isClosed() {
		return Verdict{}, ErrNodeClosed
	}
	return n.negotiator.Evaluate(peer, remote), nil
}

// Handshake 在连接上交换 init 消息并判定对端
//
// 对端不兼容时返回 ErrIncompatibleFeatures，调用方应关闭连接。
func (n *Node) Handshake(ctx context.Context, peer string, conn io.ReadWriter) (Verdict, error) {
	if n.isClosed() {
		return Verdict{}, ErrNodeClosed
	}
	return n.negotiator.Handshake(ctx, peer, conn)
}

// LastVerdict 返回对端最近一次判定
func (n *Node) LastVerdict(peer string) (VerdictRecord, bool) {
	return n.book.Get(peer)
}

// RejectedPeers 返回记录簿中所有被拒绝的对端记录
func (n *Node) RejectedPeers() []VerdictRecord {
	return n.book.Rejected()
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Close 关闭节点
//
// 重复调用安全。
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := n.app.Stop(ctx); err != nil {
		logger.Error("停止节点失败", "error", err)
		return fmt.Errorf("stop fx app: %w", err)
	}
	logger.Debug("节点已关闭")
	return nil
}

func (n *Node) isClosed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.closed
}
