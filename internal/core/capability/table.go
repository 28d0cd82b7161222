package capability

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/internal/core/feature"
)

// MaxFeatureBit 可声明的最大特性位（init 消息中向量长度为 u16）
const MaxFeatureBit = 65535*8 - 1

// ============================================================================
//                              命名空间
// ============================================================================

// Namespace 特性命名空间
//
// 协议历史上把特性拆分为连接级集合与全网广播集合，
// 两者使用相同的位对语义，但各自独立渲染、独立检查。
type Namespace int

const (
	// NamespaceLocal 连接级特性（localfeatures）
	NamespaceLocal Namespace = iota
	// NamespaceGlobal 全网级特性（globalfeatures）
	NamespaceGlobal
)

// String 返回命名空间名称
func (ns Namespace) String() string {
	switch ns {
	case NamespaceLocal:
		return "local"
	case NamespaceGlobal:
		return "global"
	default:
		return fmt.Sprintf("namespace(%d)", int(ns))
	}
}

// ============================================================================
//                              能力表
// ============================================================================

// Entry 能力表条目
type Entry struct {
	// Feature 特性标识（偶数，即强制位）
	Feature uint

	// Name 特性名称
	Name string

	// Mandatory 支持强制形式
	Mandatory bool

	// Advisory 支持建议形式
	Advisory bool
}

// Table 本地能力表
//
// 构造后不可变，可在任意数量的并发协商间共享。
type Table struct {
	namespace Namespace
	entries   []Entry
	byFeature map[uint]Entry
}

// NewTable 创建能力表
//
// 校验所有条目：标识必须为偶数、不超过 MaxFeatureBit、不得重复。
// 所有问题合并返回。条目按标识升序保存。
func NewTable(ns Namespace, entries ...Entry) (*Table, error) {
	var err error
	byFeature := make(map[uint]Entry, len(entries))
	for _, e := range entries {
		if !feature.IsMandatory(e.Feature) {
			err = multierr.Append(err, fmt.Errorf("%w: %d", ErrOddFeature, e.Feature))
			continue
		}
		if e.Feature > MaxFeatureBit {
			err = multierr.Append(err, fmt.Errorf("%w: %d", ErrFeatureTooLarge, e.Feature))
			continue
		}
		if _, dup := byFeature[e.Feature]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: %d", ErrDuplicateFeature, e.Feature))
			continue
		}
		byFeature[e.Feature] = e
	}
	if err != nil {
		return nil, fmt.Errorf("capability: invalid %s table: %w", ns, err)
	}

	sorted := make([]Entry, 0, len(byFeature))
	for _, e := range byFeature {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Feature < sorted[j].Feature
	})

	return &Table{
		namespace: ns,
		entries:   sorted,
		byFeature: byFeature,
	}, nil
}

// MustNewTable 创建能力表，失败时 panic
//
// 仅用于包级内置表的初始化。
func MustNewTable(ns Namespace, entries ...Entry) *Table {
	t, err := NewTable(ns, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Namespace 返回能力表所属命名空间
func (t *Table) Namespace() Namespace {
	return t.namespace
}

// Entries 返回条目副本（按标识升序）
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup 查找特性 n 所在特性对的条目
func (t *Table) Lookup(n uint) (Entry, bool) {
	e, ok := t.byFeature[feature.Mandatory(n)]
	return e, ok
}

// Supported 检查能力表是否支持指定位
//
// 区分特性对的两个位：偶数位查询强制形式支持，奇数位查询建议形式支持。
func (t *Table) Supported(bit uint) bool {
	e, ok := t.Lookup(bit)
	if !ok {
		return false
	}
	if feature.IsMandatory(bit) {
		return e.Mandatory
	}
	return e.Advisory
}

// Offers 检查能力表是否以任意形式支持特性 n
func (t *Table) Offers(n uint) bool {
	return t.Supported(feature.Mandatory(n)) || t.Supported(feature.Advisory(n))
}

// Render 渲染规范广告向量
//
// 仅支持强制形式的条目设置 2N，支持建议形式的条目设置 2N+1。
// 同时支持两种形式的条目只广告建议位，保证自身广告永远不是畸形声明。
// 两种形式都不支持的条目不产生任何位。
// 向量长度恰好覆盖最高位，不留多余字节。
func (t *Table) Render() bitvector.Vector {
	var v bitvector.Vector
	for _, e := range t.entries {
		switch {
		case e.Advisory:
			v.Set(feature.Advisory(e.Feature))
		case e.Mandatory:
			v.Set(e.Feature)
		}
	}
	if v == nil {
		return bitvector.Vector{}
	}
	return v
}

// Len 返回条目数
func (t *Table) Len() int {
	return len(t.entries)
}
