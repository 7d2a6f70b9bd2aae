package ratelimit

import "errors"

var (
	// ErrBackend возвращается, когда хранилище счётчиков недоступно
	ErrBackend = errors.New("ratelimit: backend failure")
)
