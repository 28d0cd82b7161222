package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// TestRun_Render 测试 render 子命令
func TestRun_Render(t *testing.T) {
	t.Setenv(envConfigFile, "")
	code, out, _ := runCLI(t, "render")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "global: 0200")
	assert.Contains(t, out, "local:  aa")
}

// TestRun_RenderConfig 测试使用配置文件渲染
func TestRun_RenderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"features":{"global":[{"bit":0,"mandatory":true}]}}`), 0o600))

	code, out, _ := runCLI(t, "render", "-config", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "global: 01")

	t.Setenv(envConfigFile, path)
	code, out, _ = runCLI(t, "render")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "global: 01")
}

// TestRun_Check 测试 check 子命令
func TestRun_Check(t *testing.T) {
	t.Setenv(envConfigFile, "")

	code, out, _ := runCLI(t, "check", "-global", "0200", "-local", "aa")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "result: compatible")

	// 连接级强制位 8 未被本地提供
	code, out, _ = runCLI(t, "check", "-local", "0100")
	assert.Equal(t, exitIncompatible, code)
	assert.Contains(t, out, "unknown_mandatory at bit 8")
	assert.Contains(t, out, "result: incompatible")

	code, _, errOut := runCLI(t, "check", "-local", "zz")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "-local")
}

// TestRun_Usage 测试用法错误
func TestRun_Usage(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "用法")

	code, _, errOut = runCLI(t, "bogus")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "未知命令")

	code, out, _ := runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "featurebits v")

	code, _, _ = runCLI(t, "render", "-h")
	assert.Equal(t, exitOK, code)
}
