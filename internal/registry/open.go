package registry

import (
	"context"
	"fmt"
)

// Open connects to the registry backend named by driver.
func Open(ctx context.Context, driver, dsn string) (Registry, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return OpenPostgres(ctx, dsn)
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	case "redis":
		return OpenRedis(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown registry driver %q", driver)
	}
}
