// Package actor 提供单消费者有界邮箱
//
// 每个组件实例拥有一个 Mailbox，并由唯一的 goroutine 顺序消费，
// 因此组件状态无需加锁。其他组件只能通过 Recipient 向邮箱投递消息：
//
//	mb := actor.NewMailbox(actor.DefaultCapacity)
//	fromDispatcher := actor.Recipient[types.InboundClientData](mb)
//
//	go actor.Run(ctx, mb, func(msg any) {
//	    switch m := msg.(type) {
//	    case types.InboundClientData:
//	        ...
//	    }
//	})
//
// 投递是即发即忘的：邮箱满或已关闭时 TrySend 立即返回错误。
// 同一发送方的消息按提交顺序被处理。
package actor
