// Package main 提供 featurebits 命令行入口
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dep2p/go-featurebits"
	"github.com/dep2p/go-featurebits/internal/core/bitvector"
	"github.com/dep2p/go-featurebits/pkg/lib/log"
)

var logger = log.Logger("featurebits/cmd")

// 退出码
const (
	exitOK           = 0
	exitIncompatible = 1
	exitUsage        = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行子命令并返回退出码
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(args[1:], stdout)
	case "check":
		var compatible bool
		compatible, err = runCheck(args[1:], stdout)
		if err == nil && !compatible {
			return exitIncompatible
		}
	case "version", "-version", "--version":
		printVersion(stdout)
		return exitOK
	case "help", "-h", "-help", "--help":
		printHelp(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "未知命令: %s\n\n", args[0])
		printHelp(stderr)
		return exitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return exitUsage
	}
	return exitOK
}

// ═══════════════════════════════════════════════════════════════════════════
// render
// ═══════════════════════════════════════════════════════════════════════════

func runRender(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stdout)
	common := bindCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	common.apply()

	node, err := newNode(common.configFile)
	if err != nil {
		return err
	}
	defer node.Close()

	fmt.Fprintf(stdout, "global: %s\n", hexOrEmpty(node.GlobalFeatures()))
	fmt.Fprintf(stdout, "local:  %s\n", hexOrEmpty(node.LocalFeatures()))
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// check
// ═══════════════════════════════════════════════════════════════════════════

func runCheck(args []string, stdout io.Writer) (bool, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stdout)
	common := bindCommonFlags(fs)
	globalHex := fs.String("global", "", "对端全网级特性向量（十六进制）")
	localHex := fs.String("local", "", "对端连接级特性向量（十六进制）")
	peer := fs.String("peer", "cli", "对端标识（用于日志）")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	common.apply()

	global, err := bitvector.Parse(*globalHex)
	if err != nil {
		return false, fmt.Errorf("-global: %w", err)
	}
	local, err := bitvector.Parse(*localHex)
	if err != nil {
		return false, fmt.Errorf("-local: %w", err)
	}

	node, err := newNode(common.configFile)
	if err != nil {
		return false, err
	}
	defer node.Close()

	v, err := node.Evaluate(*peer, featurebits.InitMessage{Global: global, Local: local})
	if err != nil {
		return false, err
	}

	fmt.Fprintf(stdout, "global: %s\n", v.Global)
	fmt.Fprintf(stdout, "local:  %s\n", v.Local)
	if v.Compatible() {
		fmt.Fprintln(stdout, "result: compatible")
	} else {
		fmt.Fprintln(stdout, "result: incompatible")
	}
	logger.Debug("check finished", "peer", *peer, "compatible", v.Compatible())
	return v.Compatible(), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 辅助函数
// ═══════════════════════════════════════════════════════════════════════════

func hexOrEmpty(v bitvector.Vector) string {
	if len(v) == 0 {
		return "(empty)"
	}
	return v.String()
}

// printVersion 打印版本信息
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "featurebits %s\n", featurebits.Version)
	if featurebits.GitCommit != "" {
		fmt.Fprintf(w, "  commit: %s\n", featurebits.GitCommit)
	}
	if featurebits.BuildDate != "" {
		fmt.Fprintf(w, "  built:  %s\n", featurebits.BuildDate)
	}
}

// printHelp 打印帮助信息
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "featurebits - 对等节点特性位协商工具")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "用法:")
	fmt.Fprintln(w, "  featurebits render [-config 文件]")
	fmt.Fprintln(w, "  featurebits check -global HEX -local HEX [-config 文件]")
	fmt.Fprintln(w, "  featurebits version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "check 在对端不兼容时以状态码 1 退出。")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "环境变量:")
	fmt.Fprintf(w, "  %s  默认配置文件\n", envConfigFile)
	fmt.Fprintln(w, "  FEATUREBITS_LOG_LEVEL  日志级别（如 core/negotiation=debug,info）")
}
