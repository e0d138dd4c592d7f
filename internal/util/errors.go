package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNoMatchingWords  = errors.New("no matching words for the requested theme and tier")
	ErrUnknownActivity  = errors.New("unknown activity id")
	ErrUnknownMood      = errors.New("unknown mood")
	ErrUnresolvedSlot   = errors.New("template text references an undefined slot")
	ErrTemplateNotFound = errors.New("story template not found")
	ErrSessionNotFound  = errors.New("practice session not found")
	ErrRecordFailed     = errors.New("usage record failed, generation not granted")
)
