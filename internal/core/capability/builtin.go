package capability

import (
	"github.com/dep2p/go-featurebits/config"
	"github.com/dep2p/go-featurebits/internal/core/bitvector"
)

// ============================================================================
//                              内置特性标识
// ============================================================================

// 连接级特性标识（偶数位）
const (
	// FeatureDataLossProtect option_data_loss_protect
	FeatureDataLossProtect uint = 0
	// FeatureInitialRoutingSync initial_routing_sync
	FeatureInitialRoutingSync uint = 2
	// FeatureUpfrontShutdownScript option_upfront_shutdown_script
	FeatureUpfrontShutdownScript uint = 4
	// FeatureGossipQueries gossip_queries
	FeatureGossipQueries uint = 6
)

// 全网级特性标识（偶数位）
const (
	// FeatureVarOnionOptin var_onion_optin
	FeatureVarOnionOptin uint = 8
)

var (
	defaultLocal = MustNewTable(NamespaceLocal,
		Entry{Feature: FeatureDataLossProtect, Name: "option_data_loss_protect", Advisory: true},
		Entry{Feature: FeatureInitialRoutingSync, Name: "initial_routing_sync", Advisory: true},
		Entry{Feature: FeatureUpfrontShutdownScript, Name: "option_upfront_shutdown_script", Advisory: true},
		Entry{Feature: FeatureGossipQueries, Name: "gossip_queries", Advisory: true},
	)

	defaultGlobal = MustNewTable(NamespaceGlobal,
		Entry{Feature: FeatureVarOnionOptin, Name: "var_onion_optin", Advisory: true},
	)
)

// DefaultLocal 返回内置连接级能力表
func DefaultLocal() *Table {
	return defaultLocal
}

// DefaultGlobal 返回内置全网级能力表
func DefaultGlobal() *Table {
	return defaultGlobal
}

// RenderLocal 渲染内置连接级能力表的广告向量
func RenderLocal() bitvector.Vector {
	return defaultLocal.Render()
}

// RenderGlobal 渲染内置全网级能力表的广告向量
func RenderGlobal() bitvector.Vector {
	return defaultGlobal.Render()
}

// ============================================================================
//                              能力表组合
// ============================================================================

// Tables 两个命名空间的能力表
type Tables struct {
	Local  *Table
	Global *Table
}

// Defaults 返回内置能力表组合
func Defaults() Tables {
	return Tables{Local: defaultLocal, Global: defaultGlobal}
}

// RenderLocal 渲染连接级广告向量
func (t Tables) RenderLocal() bitvector.Vector {
	return t.Local.Render()
}

// RenderGlobal 渲染全网级广告向量
func (t Tables) RenderGlobal() bitvector.Vector {
	return t.Global.Render()
}

// ForNamespace 返回指定命名空间的能力表
func (t Tables) ForNamespace(ns Namespace) *Table {
	if ns == NamespaceGlobal {
		return t.Global
	}
	return t.Local
}

// FromConfig 根据配置构建能力表组合
//
// 某个命名空间未配置条目时使用内置能力表。
func FromConfig(cfg config.FeaturesConfig) (Tables, error) {
	tables := Defaults()

	if len(cfg.Local) > 0 {
		local, err := NewTable(NamespaceLocal, entriesFromConfig(cfg.Local)...)
		if err != nil {
			return Tables{}, err
		}
		tables.Local = local
	}

	if len(cfg.Global) > 0 {
		global, err := NewTable(NamespaceGlobal, entriesFromConfig(cfg.Global)...)
		if err != nil {
			return Tables{}, err
		}
		tables.Global = global
	}

	return tables, nil
}

func entriesFromConfig(in []config.FeatureEntry) []Entry {
	out := make([]Entry, 0, len(in))
	for _, e := range in {
		out = append(out, Entry{
			Feature:   e.Bit,
			Name:      e.Name,
			Mandatory: e.Mandatory,
			Advisory:  e.Advisory,
		})
	}
	return out
}
