package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	EmployeeCachePrefix     = "employee:"
	EmployeeListCachePrefix = "employees:list:"
	SettingsCacheKey        = "settings:policy"
	CacheTTLShort           = 5 * time.Minute
	CacheTTLMedium          = 30 * time.Minute
)

func EmployeeListCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%s%d:%d", EmployeeListCachePrefix, page, pageSize)
}

// InvalidatePlannerCaches drops the shared list/settings caches plus any
// per-employee snapshots. Leave-entry writes change derived employee fields,
// so both services call this after a write.
func InvalidatePlannerCaches(ctx context.Context, rdb *redis.Client, employeeIDs ...string) {
	_ = rdb.Del(ctx, SettingsCacheKey)

	if keys, err := rdb.Keys(ctx, EmployeeListCachePrefix+"*").Result(); err == nil && len(keys) > 0 {
		_ = rdb.Del(ctx, keys...)
	}

	for _, id := range employeeIDs {
		_ = rdb.Del(ctx, EmployeeCachePrefix+id)
	}
}
