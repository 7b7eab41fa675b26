package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
	Increment(key string) (int64, error)
	Exists(key string) (bool, error)
	ExpireAt(key string, expiration time.Time) error
	// SetNX устанавливает значение только если ключа ещё нет;
	// используется для резервирования кодов матчей
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
