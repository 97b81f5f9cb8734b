package actor

import "errors"

var (
	// ErrMailboxFull 邮箱已满
	ErrMailboxFull = errors.New("actor: mailbox full")

	// ErrMailboxClosed 邮箱已关闭
	ErrMailboxClosed = errors.New("actor: mailbox closed")
)
