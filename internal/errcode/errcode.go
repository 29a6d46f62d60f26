package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如超出限额）
// - 5xxx：系统错误（需要中断流程）
const (
	OK            = 0
	QuotaExceeded = 4003
	NotFound      = 4004
	ExportFailed  = 4005
	SystemError   = 5000
)
