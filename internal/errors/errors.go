package errors

import (
	stdErrors "errors"
	"strings"
	"sync"
)

// Code 表示系统内的统一错误码。
type Code string

// Severity 描述错误的严重程度，用于日志和告警。
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	CodeUnknown               Code = "UNKNOWN"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeNotFound              Code = "NOT_FOUND"
	CodeInitializationFailure Code = "INITIALIZATION_FAILURE"
	CodePlannerFailure        Code = "PLANNER_FAILURE"
	CodeProviderFailure       Code = "PROVIDER_FAILURE"
	CodeExportFailure         Code = "EXPORT_FAILURE"
	CodeTimeout               Code = "TIMEOUT"
)

// Attributes 为错误码提供默认行为。
type Attributes struct {
	Message   string
	Severity  Severity
	Retryable bool
}

var (
	registryMu sync.RWMutex
	registry   = map[Code]Attributes{
		CodeUnknown:               {Message: "unknown error", Severity: SeverityCritical},
		CodeInvalidArgument:       {Message: "invalid argument", Severity: SeverityInfo},
		CodeNotFound:              {Message: "resource not found", Severity: SeverityInfo},
		CodeInitializationFailure: {Message: "service not initialized", Severity: SeverityWarning, Retryable: true},
		CodePlannerFailure:        {Message: "planner model failure", Severity: SeverityWarning, Retryable: true},
		CodeProviderFailure:       {Message: "external provider failure", Severity: SeverityWarning, Retryable: true},
		CodeExportFailure:         {Message: "transaction export failure", Severity: SeverityWarning, Retryable: true},
		CodeTimeout:               {Message: "operation timed out", Severity: SeverityWarning, Retryable: true},
	}
)

// Register 允许业务模块在初始化阶段注册新的错误码描述。
func Register(code Code, attr Attributes) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = attr
}

// AttributesOf 返回错误码对应的属性，未注册时退回 UNKNOWN。
func AttributesOf(code Code) Attributes {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if attr, ok := registry[code]; ok {
		return attr
	}
	return registry[CodeUnknown]
}

// Error 是系统内统一的错误类型。
type Error struct {
	code     Code
	message  string
	cause    error
	metadata map[string]string
}

// Option 定义可选配置。
type Option func(*Error)

// WithMetadata 附加额外信息。
func WithMetadata(key, value string) Option {
	return func(e *Error) {
		if e.metadata == nil {
			e.metadata = make(map[string]string)
		}
		e.metadata[key] = value
	}
}

// New 创建带错误码的错误。
func New(code Code, message string, opts ...Option) *Error {
	err := &Error{code: code, message: message}
	for _, opt := range opts {
		if opt != nil {
			opt(err)
		}
	}
	return err
}

// Wrap 包装底层错误并附加错误码。
func Wrap(code Code, cause error, message string, opts ...Option) *Error {
	err := New(code, message, opts...)
	err.cause = cause
	return err
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString(string(e.code))
	if e.message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.message)
	}
	if e.cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.cause.Error())
	}
	return builder.String()
}

// Unwrap 返回底层错误。
func (e *Error) Unwrap() error {
	return e.cause
}

// Code 返回错误码。
func (e *Error) Code() Code {
	if e == nil {
		return CodeUnknown
	}
	return e.code
}

// Metadata 返回附加信息的拷贝。
func (e *Error) Metadata() map[string]string {
	if len(e.metadata) == 0 {
		return nil
	}
	copied := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		copied[k] = v
	}
	return copied
}

// CodeOf 提取任意错误中的错误码。
func CodeOf(err error) Code {
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed.Code()
	}
	return CodeUnknown
}

// Is 判断错误链上是否存在指定错误码。
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
