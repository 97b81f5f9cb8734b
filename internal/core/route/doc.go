// Package route 构造和消费多跳路由
//
// 路由由若干路由段组成。每个路由段是一串节点公钥和一个目标组件，
// 编码后成为逐跳加密的头部序列：
//
//	段 [k0, k1, ..., kn] → C
//	  seal(k0, {next: k1})
//	  seal(k1, {next: k2})
//	  ...
//	  seal(kn, {component: C})
//
// 相邻路由段必须首尾相接：前一段的最后一个公钥等于后一段的第一个公钥。
// 每个节点只能解开属于自己的那一跳，看到的只有下一跳或交付组件。
package route
