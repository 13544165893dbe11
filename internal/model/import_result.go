package model

import "fmt"

// ImportErrorKind 导入错误分类，调用方只依赖 kind 做逻辑
type ImportErrorKind string

const (
	ImportErrInvalidFileFormat ImportErrorKind = "invalidFileFormat"
	ImportErrEmptyFile         ImportErrorKind = "emptyFile"
	ImportErrInvalidHeader     ImportErrorKind = "invalidHeader"
	ImportErrInvalidDateFormat ImportErrorKind = "invalidDateFormat"
	ImportErrInvalidScoreFmt   ImportErrorKind = "invalidScoreFormat"
	ImportErrDuplicateSession  ImportErrorKind = "duplicateSession"
	ImportErrUnknownCategory   ImportErrorKind = "unknownCategory"
)

// swagger:model ImportError
type ImportError struct {
	Kind    ImportErrorKind `json:"kind"`
	Message string          `json:"message"`
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewImportError(kind ImportErrorKind, format string, args ...interface{}) *ImportError {
	return &ImportError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ImportResult 单次导入的汇总结果，行级错误累积在 Errors 中，不中断整体导入
// swagger:model ImportResult
type ImportResult struct {
	SessionsImported  int           `json:"sessionsImported"`
	DrillsImported    int           `json:"drillsImported"`
	DuplicatesSkipped int           `json:"duplicatesSkipped"`
	Errors            []ImportError `json:"errors"`
}
