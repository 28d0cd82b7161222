package compat

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultVerdictCapacity 默认保留的对端判定条数
const DefaultVerdictCapacity = 1024

// Verdict 两个命名空间的综合判定
//
// 连接级与全网级向量独立检查，两者都兼容才可互通。
type Verdict struct {
	Global Result
	Local  Result
}

// Compatible 两个命名空间是否都兼容
func (v Verdict) Compatible() bool {
	return v.Global.Compatible && v.Local.Compatible
}

// String 返回判定描述
func (v Verdict) String() string {
	return fmt.Sprintf("global=%s local=%s", v.Global, v.Local)
}

// Record 对端判定记录
type Record struct {
	Peer    string
	Verdict Verdict
	At      time.Time
}

// VerdictBook 对端判定记录簿
//
// 按对端保留最近一次判定，超出容量时淘汰最久未访问的记录。
// 并发安全。
type VerdictBook struct {
	cache *lru.Cache[string, Record]
}

// NewVerdictBook 创建判定记录簿
func NewVerdictBook(capacity int) (*VerdictBook, error) {
	if capacity <= 0 {
		capacity = DefaultVerdictCapacity
	}
	cache, err := lru.New[string, Record](capacity)
	if err != nil {
		return nil, fmt.Errorf("compat: create verdict cache: %w", err)
	}
	return &VerdictBook{cache: cache}, nil
}

// Put 记录对端判定，覆盖旧记录
func (b *VerdictBook) Put(rec Record) {
	if rec.Peer == "" {
		return
	}
	b.cache.Add(rec.Peer, rec)
}

// Get 获取对端最近一次判定
func (b *VerdictBook) Get(peer string) (Record, bool) {
	return b.cache.Get(peer)
}

// Remove 删除对端判定
func (b *VerdictBook) Remove(peer string) {
	b.cache.Remove(peer)
}

// Rejected 返回当前记录中所有不兼容的对端记录
func (b *VerdictBook) Rejected() []Record {
	var out []Record
	for _, peer := range b.cache.Keys() {
		rec, ok := b.cache.Peek(peer)
		if ok && !rec.Verdict.Compatible() {
			out = append(out, rec)
		}
	}
	return out
}

// Len 返回记录条数
func (b *VerdictBook) Len() int {
	return b.cache.Len()
}
