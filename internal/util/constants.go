package util

const (
	DateFormat      = "2006-01-02"
	TimeFormat      = "2006-01-02 15:04:05"
	TimestampFormat = "20060102_150405"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimePDF = "application/pdf"
	MimeSVG = "image/svg+xml"
	MimePNG = "image/png"
)
