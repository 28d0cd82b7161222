package compat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-featurebits/config"
)

func rejected() Verdict {
	return Verdict{
		Global: Result{Compatible: true},
		Local:  Result{Bit: 12, Reason: ReasonUnknownMandatory},
	}
}

func accepted() Verdict {
	return Verdict{Global: Result{Compatible: true}, Local: Result{Compatible: true}}
}

// TestVerdict 测试综合判定
func TestVerdict(t *testing.T) {
	assert.True(t, accepted().Compatible())
	assert.False(t, rejected().Compatible())
	assert.Equal(t, "global=compatible local=incompatible: unknown_mandatory at bit 12", rejected().String())
}

// TestVerdictBook 测试判定记录簿
func TestVerdictBook(t *testing.T) {
	book, err := NewVerdictBook(2)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	book.Put(Record{Peer: "a", Verdict: accepted(), At: now})
	book.Put(Record{Peer: "b", Verdict: rejected(), At: now})
	assert.Equal(t, 2, book.Len())

	rec, ok := book.Get("b")
	require.True(t, ok)
	assert.Equal(t, uint(12), rec.Verdict.Local.Bit)

	rej := book.Rejected()
	require.Len(t, rej, 1)
	assert.Equal(t, "b", rej[0].Peer)

	// 淘汰最久未访问的 a
	book.Put(Record{Peer: "c", Verdict: accepted(), At: now})
	_, ok = book.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, book.Len())

	book.Remove("b")
	assert.Empty(t, book.Rejected())

	// 空对端被忽略
	book.Put(Record{Verdict: rejected()})
	assert.Equal(t, 1, book.Len())

	t.Log("✅ VerdictBook 测试通过")
}

// TestProvideVerdictBook 测试 Fx 提供函数
func TestProvideVerdictBook(t *testing.T) {
	book, err := ProvideVerdictBook(Params{})
	require.NoError(t, err)
	assert.NotNil(t, book)

	cfg := config.NewConfig()
	cfg.Verdicts.Capacity = 1
	book, err = ProvideVerdictBook(Params{UnifiedCfg: cfg})
	require.NoError(t, err)
	book.Put(Record{Peer: "x", Verdict: accepted()})
	book.Put(Record{Peer: "y", Verdict: accepted()})
	assert.Equal(t, 1, book.Len())
}
