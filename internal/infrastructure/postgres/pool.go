package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/prestamos-pro/pkg/config"
)

// Parámetros del pool para una oficina con pocos cobradores concurrentes:
// más conexiones no aportan y agotan el límite del plan de la base.
const (
	maxConns        = 10
	minConns        = 2
	maxConnLifetime = time.Hour
	maxConnIdleTime = 30 * time.Minute
)

// NewPool abre el pool de conexiones a PostgreSQL y verifica la conexión
// con un ping antes de devolverlo.
//
// DATABASE_URL tiene prioridad; si no está definido se arma el DSN desde
// las variables DB_* de la configuración.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = cfg.DSN()
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = maxConns
	pc.MinConns = minConns
	pc.MaxConnLifetime = maxConnLifetime
	pc.MaxConnIdleTime = maxConnIdleTime
	pc.HealthCheckPeriod = time.Minute
	pc.ConnConfig.DialFunc = dialIPv4Primero

	// NUMERIC/DECIMAL viaja como shopspring/decimal en cada conexión del
	// pool: los montos de préstamos y pagos nunca pasan por float64.
	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping a la base: %w", err)
	}
	return pool, nil
}

// dialIPv4Primero intenta la conexión por IPv4 y solo si falla cae a la
// familia que pida el driver. Los contenedores del despliegue no tienen
// ruta IPv6 y algunos hosts de base resuelven registros AAAA primero.
func dialIPv4Primero(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{KeepAlive: 5 * time.Minute}
	if conn, err := d.DialContext(ctx, "tcp4", addr); err == nil {
		return conn, nil
	}
	return d.DialContext(ctx, network, addr)
}
