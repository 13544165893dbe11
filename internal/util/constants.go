package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 导入文件相关常量
const (
	MimeCSV         = "text/csv"
	MimeText        = "text/plain"
	MimeJSON        = "application/json"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedImportMimeTypes = []string{MimeCSV, MimeText, MimeOctetStream}
)
