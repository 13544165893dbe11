package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSessionNotFound    = errors.New("session not found")
	ErrDrillNotFound      = errors.New("drill not found")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
