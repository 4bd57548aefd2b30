package errs

import "errors"

var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrCaseNotFound     = errors.New("未找到案件记录")
	ErrNoActiveChannel  = errors.New("收件人没有可用的通知渠道")
	ErrLetterAssembly   = errors.New("信件拼装失败")
	// ErrProviderClient 供应商返回客户端错误（400/403），不重试
	ErrProviderClient = errors.New("供应商客户端错误")
	// ErrProviderServer 供应商服务端或网络错误，可重试
	ErrProviderServer = errors.New("供应商服务端错误")
	ErrScheduling     = errors.New("重试任务调度失败")
	ErrJobDuplicate   = errors.New("重试任务已存在")
)
