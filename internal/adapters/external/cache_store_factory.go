package external

import (
	"fmt"

	"synergyai.app/internal/config"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

type CacheStoreFactory struct{}

func NewCacheStoreFactory() *CacheStoreFactory {
	return &CacheStoreFactory{}
}

func (f *CacheStoreFactory) CreateCacheStore(cfg *config.CacheConfig) (ports.CacheStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheStore(), nil
	case config.CacheTypeRedis:
		return NewRedisCacheStore(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
