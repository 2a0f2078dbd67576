package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/config"
)

// ApplicationName は pg_stat_activity に表示される接続名です。
const ApplicationName = "staffing"

// BuildPoolConfig はデータベース設定から pgxpool.Config を生成します。
// loc はセッションのタイムゾーンとして設定され、CURRENT_DATE が業務上の「今日」と一致します。
func BuildPoolConfig(cfg config.DatabaseConfig, loc *time.Location) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	runtime := poolCfg.ConnConfig.RuntimeParams
	if _, ok := runtime["application_name"]; !ok {
		runtime["application_name"] = ApplicationName
	}
	if loc != nil {
		runtime["timezone"] = loc.String()
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = clampConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = min(clampConns(cfg.MaxIdleConns), poolCfg.MaxConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	return poolCfg, nil
}

func clampConns(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// NewPool はプールを開き、データベースへの疎通を確認します。
func NewPool(ctx context.Context, cfg config.DatabaseConfig, loc *time.Location) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg, loc)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return pool, nil
}
