// Package capability 实现本地能力表与广告向量渲染
//
// # 核心功能
//
// 1. 能力表 (Table)
//   - 列出本实现理解的特性标识（偶数）
//   - 每个条目标记是否支持强制形式、建议形式
//   - 构造时校验，构造后不可变
//
// 2. 位查询 (Supported / Offers)
//   - Supported 区分特性对的两个位：偶数位查强制支持，奇数位查建议支持
//   - Offers 查询特性对是否以任意形式被支持
//
// 3. 渲染 (Render)
//   - 生成规范广告向量，长度恰好覆盖最高位
//   - 连接级与全网级各有一个渲染入口
//
// # 命名空间
//
// 协议历史上把特性分为两组：
//
//	NamespaceLocal  - 连接级（localfeatures），仅在单条连接上协商
//	NamespaceGlobal - 全网级（globalfeatures），随节点公告广播
//
// 两组特性使用相同的位对语义，独立渲染、独立检查。
//
// # 快速开始
//
//	tables, err := capability.FromConfig(cfg.Features)
//	if err != nil {
//	    return err
//	}
//	lf := tables.RenderLocal()
//	gf := tables.RenderGlobal()
//
// # 注意事项
//
//  1. 同时支持两种形式的条目只广告建议位，自身广告永远不会是畸形声明
//  2. 能力表构造后不可变，可在并发协商间直接共享
package capability
