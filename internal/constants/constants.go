package constants

// 队列常量
const (
	QueueDefault          = "default"
	TaskParcelStatusEmail = "parcel:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pn"
)

// 追踪单号常量
const (
	TrackingIDPrefix     = "TRK"
	TrackingIDRandDigits = 6
)
