package featurebits

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-featurebits/config"
)

// TestNew_Defaults 测试默认节点
func TestNew_Defaults(t *testing.T) {
	node, err := New()
	require.NoError(t, err)
	defer node.Close()

	assert.Equal(t, RenderLocalFeatures(), node.LocalFeatures())
	assert.Equal(t, RenderGlobalFeatures(), node.GlobalFeatures())
	assert.True(t, node.Supports(false, 1))
	assert.True(t, node.Supports(true, 9))
	assert.False(t, node.Supports(true, 8))

	t.Log("✅ 默认节点测试通过")
}

// TestNew_Options 测试选项覆盖
func TestNew_Options(t *testing.T) {
	mock := clock.NewMock()
	reg := prometheus.NewRegistry()

	node, err := New(
		WithLocalFeatures(Feature{Bit: 10, Name: "strict", Mandatory: true}),
		WithGlobalFeatures(Feature{Bit: 12, Advisory: true}),
		WithHandshakeTimeout(time.Second),
		WithRegisterer(reg),
		WithClock(mock),
	)
	require.NoError(t, err)
	defer node.Close()

	assert.Equal(t, []uint{10}, node.LocalFeatures().SetBits())
	assert.Equal(t, []uint{13}, node.GlobalFeatures().SetBits())

	v, err := node.Evaluate("peer", InitMessage{Local: node.LocalFeatures()})
	require.NoError(t, err)
	assert.True(t, v.Compatible())
	assert.Equal(t, mock.Now(), v.At)

	n, err := testutil.GatherAndCount(reg, "featurebits_negotiations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "每个命名空间一个 accepted 序列")
}

// TestNew_InvalidOptions 测试无效选项
func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithLocalFeatures(Feature{Bit: 3}))
	assert.Error(t, err)

	_, err = New(WithHandshakeTimeout(0))
	assert.Error(t, err)

	_, err = New(WithConfig(nil))
	assert.Error(t, err)

	_, err = New(WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")))
	assert.Error(t, err)
}

// TestNew_ConfigFile 测试从 TOML 文件加载配置
func TestNew_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "featurebits.toml")
	content := `
[handshake]
timeout = "5s"
max_message_size = 4096

[[features.local]]
bit = 20
name = "custom"
advisory = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	node, err := New(WithConfigFile(path))
	require.NoError(t, err)
	defer node.Close()

	assert.Equal(t, []uint{21}, node.LocalFeatures().SetBits())
	assert.Equal(t, RenderGlobalFeatures(), node.GlobalFeatures())
}

// TestNode_Handshake 测试两个节点握手
func TestNode_Handshake(t *testing.T) {
	lenient, err := New()
	require.NoError(t, err)
	defer lenient.Close()

	strict, err := New(WithLocalFeatures(Feature{Bit: 10, Mandatory: true}))
	require.NoError(t, err)
	defer strict.Close()

	ca, cb := net.Pipe()
	defer ca.Close()
	defer cb.Close()

	var errLenient, errStrict error
	var g errgroup.Group
	g.Go(func() error {
		_, errLenient = lenient.Handshake(context.Background(), "strict", ca)
		return nil
	})
	g.Go(func() error {
		_, errStrict = strict.Handshake(context.Background(), "lenient", cb)
		return nil
	})
	require.NoError(t, g.Wait())

	assert.ErrorIs(t, errLenient, ErrIncompatibleFeatures)
	assert.NoError(t, errStrict)

	rec, ok := lenient.LastVerdict("strict")
	require.True(t, ok)
	assert.Equal(t, ReasonUnknownMandatory, rec.Verdict.Local.Reason)

	rejected := lenient.RejectedPeers()
	require.Len(t, rejected, 1)
	assert.Equal(t, "strict", rejected[0].Peer)
	assert.Empty(t, strict.RejectedPeers())
}

// TestNode_Close 测试关闭节点
func TestNode_Close(t *testing.T) {
	node, err := New(WithConfig(config.NewConfig()))
	require.NoError(t, err)

	require.NoError(t, node.Close())
	require.NoError(t, node.Close(), "重复关闭安全")

	_, err = node.Evaluate("p", InitMessage{})
	assert.ErrorIs(t, err, ErrNodeClosed)

	_, err = node.Handshake(context.Background(), "p", nil)
	assert.ErrorIs(t, err, ErrNodeClosed)
}

// TestVersionInfo 测试版本信息
func TestVersionInfo(t *testing.T) {
	assert.Equal(t, "featurebits "+Version, VersionInfo())

	GitCommit = "0123456789abcdef"
	defer func() { GitCommit = "" }()
	assert.Equal(t, "featurebits "+Version+" (01234567)", VersionInfo())
}
