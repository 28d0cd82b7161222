package negotiation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/internal/core/capability"
	"github.com/dep2p/go-featurebits/internal/core/compat"
	"github.com/dep2p/go-featurebits/internal/core/metrics"
	"github.com/dep2p/go-featurebits/internal/protocol/initmsg"
	"github.com/dep2p/go-featurebits/internal/util/logger"
	liblog "github.com/dep2p/go-featurebits/pkg/lib/log"
)

var log = logger.Logger("core/negotiation")

// ============================================================================
//                              Verdict
// ============================================================================

// Verdict 一次协商的判定
type Verdict struct {
	compat.Verdict

	// ID 协商标识，用于关联日志
	ID string

	// Peer 对端标识
	Peer string

	// At 判定时间
	At time.Time
}

// ============================================================================
//                              Negotiator 实现
// ============================================================================

// Negotiator 特性协商器
//
// 本地广告向量在创建时渲染一次并缓存，之后只读。
// 所有方法并发安全。
type Negotiator struct {
	cfg     Config
	tables  capability.Tables
	book    *compat.VerdictBook
	metrics metrics.Reporter
	clock   clock.Clock

	// 缓存的广告向量
	local  bitvector.Vector
	global bitvector.Vector
}

// NewNegotiator 创建协商器
//
// book、reporter、clk 为 nil 时分别使用默认容量的记录簿、空指标与系统时钟。
func NewNegotiator(cfg Config, tables capability.Tables, book *compat.VerdictBook, reporter metrics.Reporter, clk clock.Clock) (*Negotiator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tables.Local == nil || tables.Global == nil {
		return nil, fmt.Errorf("%w: missing capability table", ErrInvalidConfig)
	}
	if book == nil {
		var err error
		if book, err = compat.NewVerdictBook(compat.DefaultVerdictCapacity); err != nil {
			return nil, err
		}
	}
	if reporter == nil {
		reporter = metrics.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}

	return &Negotiator{
		cfg:     cfg,
		tables:  tables,
		book:    book,
		metrics: reporter,
		clock:   clk,
		local:   tables.RenderLocal(),
		global:  tables.RenderGlobal(),
	}, nil
}

// LocalFeatures 返回连接级广告向量副本
func (n *Negotiator) LocalFeatures() bitvector.Vector {
	return n.local.Clone()
}

// GlobalFeatures 返回全网级广告向量副本
func (n *Negotiator) GlobalFeatures() bitvector.Vector {
	return n.global.Clone()
}

// InitMessage 返回本地 init 消息
func (n *Negotiator) InitMessage() initmsg.Message {
	return initmsg.Message{Global: n.GlobalFeatures(), Local: n.LocalFeatures()}
}

// LastVerdict 返回对端最近一次判定
func (n *Negotiator) LastVerdict(peer string) (compat.Record, bool) {
	return n.book.Get(peer)
}

// ============================================================================
//                              判定
// ============================================================================

// Evaluate 判定对端 init 消息
//
// 全网级向量与本地全网级向量比较，连接级与连接级比较，两者独立。
// 判定记录到记录簿并更新指标。
func (n *Negotiator) Evaluate(peer string, remote initmsg.Message) Verdict {
	return n.evaluate(uuid.NewString(), peer, remote)
}

func (n *Negotiator) evaluate(id, peer string, remote initmsg.Message) Verdict {
	v := Verdict{
		Verdict: compat.Verdict{
			Global: compat.Check(remote.Global, n.global),
			Local:  compat.Check(remote.Local, n.local),
		},
		ID:   id,
		Peer: peer,
		At:   n.clock.Now(),
	}

	n.observe(capability.NamespaceGlobal, v.Global)
	n.observe(capability.NamespaceLocal, v.Local)
	n.book.Put(compat.Record{Peer: peer, Verdict: v.Verdict, At: v.At})

	if v.Compatible() {
		log.Debug("peer features accepted",
			"negotiation", liblog.TruncateID(id, 8),
			"peer", peer,
			"global", remote.Global.String(),
			"local", remote.Local.String())
	} else {
		log.Info("peer features rejected",
			"negotiation", liblog.TruncateID(id, 8),
			"peer", peer,
			"verdict", v.Verdict.String())
	}
	return v
}

func (n *Negotiator) observe(ns capability.Namespace, res compat.Result) {
	n.metrics.ObserveNegotiation(ns.String(), res.Compatible)
	if !res.Compatible {
		n.metrics.ObserveRejection(ns.String(), res.Reason.String())
	}
}

// ============================================================================
//                              握手
// ============================================================================

// deadliner 支持截止时间的连接（net.Conn 等）
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Handshake 在连接上交换 init 消息并判定对端
//
// 写出本地消息与读取对端消息并发进行，两者都结束后才返回。
// conn 支持 SetDeadline 时，超时、ctx 取消或任一方向失败都会中断另一方向；
// 否则 ctx 只在开始前检查。
//
// 判定不兼容时返回判定结果和包装了 ErrIncompatibleFeatures 的错误。
func (n *Negotiator) Handshake(ctx context.Context, peer string, conn io.ReadWriter) (Verdict, error) {
	if conn == nil {
		return Verdict{}, ErrNilConn
	}
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	id := uuid.NewString()
	start := n.clock.Now()
	defer func() {
		n.metrics.ObserveHandshakeDuration(n.clock.Since(start))
	}()

	g, gctx := errgroup.WithContext(ctx)

	if d, ok := conn.(deadliner); ok {
		deadline := time.Now().Add(n.cfg.Timeout)
		if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
			deadline = ctxDeadline
		}
		if err := d.SetDeadline(deadline); err != nil {
			return Verdict{}, fmt.Errorf("negotiation: set deadline: %w", err)
		}
		defer interruptOn(gctx, d)()
	}

	var remote initmsg.Message
	g.Go(func() error {
		if err := initmsg.Write(conn, n.InitMessage()); err != nil {
			return fmt.Errorf("send init: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		msg, err := initmsg.Read(conn, n.cfg.MaxMessageSize)
		if err != nil {
			return fmt.Errorf("receive init: %w", err)
		}
		remote = msg
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		log.Warn("init exchange failed",
			"negotiation", liblog.TruncateID(id, 8),
			"peer", peer,
			"err", err)
		return Verdict{ID: id, Peer: peer}, fmt.Errorf("negotiation: exchange with %s: %w", peer, err)
	}

	v := n.evaluate(id, peer, remote)
	if !v.Compatible() {
		return v, fmt.Errorf("%w: %s", ErrIncompatibleFeatures, v.Verdict)
	}
	return v, nil
}

// interruptOn 在 ctx 结束时把截止时间设为过去，中断阻塞的读写
//
// 返回的函数等待中断完成（若已触发）并清除截止时间。
func interruptOn(ctx context.Context, d deadliner) func() {
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		_ = d.SetDeadline(time.Unix(1, 0))
	})
	return func() {
		if !stop() {
			<-fired
		}
		_ = d.SetDeadline(time.Time{})
	}
}
