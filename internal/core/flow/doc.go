// Package flow 实现数据路径的窗口流控
//
// Actor 之间的投递是即发即忘的，邮箱满被视为对方不可用。
// 为了让正常流量不写满邮箱，数据在源头发出前先占用窗口，在终点写出后归还：
//
//   - 流窗口：每个客户端连接每个方向一个，慢客户端只阻塞自己的连接
//   - 会话窗口：整个节点共享，限制所有邮箱中在途数据块的总数
//
// 窗口由 Dispatcher 在接受连接时打开，连接关闭时遗忘；
// 遗忘时归还该连接尚未归还的会话单位，丢在半路的数据块不会永久占用会话窗口。
//
//	ws := ctrl.Open(key)
//	if err := ws.Upstream.Acquire(ctx); err != nil {
//	    return
//	}
//	// ... 投递，终点写出后
//	ws.Upstream.Release()
package flow
