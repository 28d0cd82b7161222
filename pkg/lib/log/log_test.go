package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLazyLogger 测试懒加载 logger 跟随默认输出切换
func TestLazyLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l := Logger("featurebits")

	var first, second bytes.Buffer
	SetOutput(&first)
	l.Info("one", "k", 1)
	l.Debug("hidden")

	SetOutputWithLevel(&second, LevelDebug)
	l.Debug("two")
	l.With("peer", "abc").Warn("three")

	assert.Contains(t, first.String(), "component=featurebits")
	assert.Contains(t, first.String(), "k=1")
	assert.NotContains(t, first.String(), "hidden")
	assert.Contains(t, second.String(), "two")
	assert.Contains(t, second.String(), "peer=abc")
}

// TestTruncateID 测试 ID 截取
func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc", TruncateID("abc", 8))
	assert.Equal(t, "01234567", TruncateID("0123456789", 8))
	assert.Equal(t, "", TruncateID("", 8))
}
