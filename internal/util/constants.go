package util

const (
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 报告归档相关常量
const (
	MimeMarkdown = "text/markdown; charset=utf-8"
	MimeJSON     = "application/json"
)
