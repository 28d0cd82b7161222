package main

import (
	"flag"
	"os"

	"github.com/dep2p/go-featurebits"
	"github.com/dep2p/go-featurebits/pkg/lib/log"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// envConfigFile 未指定 -config 时使用的配置文件环境变量
const envConfigFile = "FEATUREBITS_CONFIG"

// commonFlags 所有子命令共享的参数
type commonFlags struct {
	configFile string
	verbose    bool
}

func bindCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configFile, "config", "", "配置文件路径（.json 或 .toml）")
	fs.BoolVar(&c.verbose, "v", false, "输出调试日志")
	return c
}

// apply 应用环境变量与日志设置
//
// 命令行参数优先于环境变量。
func (c *commonFlags) apply() {
	if c.configFile == "" {
		c.configFile = os.Getenv(envConfigFile)
	}
	if c.verbose {
		log.SetOutputWithLevel(os.Stderr, log.LevelDebug)
	}
}

// newNode 按配置文件创建节点
func newNode(configFile string) (*featurebits.Node, error) {
	var opts []featurebits.Option
	if configFile != "" {
		opts = append(opts, featurebits.WithConfigFile(configFile))
	}
	return featurebits.New(opts...)
}
