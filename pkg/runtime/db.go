package runtime

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/puddle/v2"
	"golang.org/x/sync/errgroup"

	"github.com/marshallshelly/gravel/pkg/dialect"
)

// DB is a bounded pool of database connections shared by every model operation.
// It is safe for concurrent use; callers never lock it.
type DB struct {
	sqlDB   *sql.DB
	pool    *puddle.Pool[*sql.Conn]
	dialect *dialect.Dialect
	config  *Config
	logger  *slog.Logger
}

// Option configures a DB.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	maxSize int32
	minSize int32
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPoolSize overrides the pool bounds. Connect takes them from Config otherwise.
func WithPoolSize(minSize, maxSize int32) Option {
	return func(o *options) {
		o.minSize = minSize
		o.maxSize = maxSize
	}
}

// Connect validates config, opens the engine and warms MinSize connections.
func Connect(ctx context.Context, config *Config, opts ...Option) (*DB, error) {
	cfg := *config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := dialect.Lookup(cfg.Driver)
	if err != nil {
		return nil, &ConfigurationError{Key: "driver", Message: err.Error()}
	}

	dsn, err := buildDSN(d, &cfg)
	if err != nil {
		return nil, &ConfigurationError{Key: "driver", Message: err.Error()}
	}

	sqlDB, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.Name, err)
	}

	opts = append([]Option{WithPoolSize(cfg.PoolMinSize(), cfg.MaxSize)}, opts...)
	db, err := newDB(ctx, sqlDB, d, &cfg, opts...)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	redacted := cfg.Redacted()
	db.logger.Info("connection pool ready",
		"driver", d.Name,
		"host", redacted.Host,
		"db", redacted.DB,
		"minsize", cfg.PoolMinSize(),
		"maxsize", cfg.MaxSize,
	)

	return db, nil
}

// NewDB wraps an already opened *sql.DB. The DB takes ownership and closes it on Close.
func NewDB(ctx context.Context, sqlDB *sql.DB, d *dialect.Dialect, opts ...Option) (*DB, error) {
	cfg := &Config{Driver: d.Name}
	cfg.ApplyDefaults()
	return newDB(ctx, sqlDB, d, cfg, opts...)
}

func newDB(ctx context.Context, sqlDB *sql.DB, d *dialect.Dialect, cfg *Config, opts ...Option) (*DB, error) {
	o := options{
		maxSize: cfg.MaxSize,
		minSize: cfg.PoolMinSize(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.maxSize < 1 {
		return nil, &ConfigurationError{Key: "maxsize", Message: fmt.Sprintf("must be at least 1, got %d", o.maxSize)}
	}
	if o.minSize > o.maxSize {
		o.minSize = o.maxSize
	}
	minSize := o.minSize
	cfg.MaxSize, cfg.MinSize = o.maxSize, &minSize

	// database/sql must never hand out more connections than the pool holds.
	sqlDB.SetMaxOpenConns(int(o.maxSize))
	sqlDB.SetMaxIdleConns(int(o.maxSize))

	pool, err := puddle.NewPool(&puddle.Config[*sql.Conn]{
		Constructor: func(ctx context.Context) (*sql.Conn, error) {
			return sqlDB.Conn(ctx)
		},
		Destructor: func(conn *sql.Conn) {
			_ = conn.Close()
		},
		MaxSize: o.maxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &DB{
		sqlDB:   sqlDB,
		pool:    pool,
		dialect: d,
		config:  cfg,
		logger:  o.logger,
	}

	if err := db.warm(ctx, o.minSize); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// warm opens n connections concurrently so the first callers do not pay for dialing.
func (db *DB) warm(ctx context.Context, n int32) error {
	g, ctx := errgroup.WithContext(ctx)
	for range n {
		g.Go(func() error {
			return db.pool.CreateResource(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to open initial connections: %w", err)
	}
	return nil
}

// Dialect returns the SQL dialect statements are rebound to.
func (db *DB) Dialect() *dialect.Dialect {
	return db.dialect
}

// Config returns a copy of the effective configuration.
func (db *DB) Config() Config {
	return *db.config
}

// Logger returns the DB's logger.
func (db *DB) Logger() *slog.Logger {
	return db.logger
}

// Acquire checks a connection out of the pool, waiting while all MaxSize connections
// are held. Waiters are served in arrival order. The caller must call Release.
func (db *DB) Acquire(ctx context.Context) (*Conn, error) {
	res, err := db.pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, puddle.ErrClosedPool) {
			return nil, ErrPoolClosed
		}
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Conn{res: res, db: db}, nil
}

// WithConn runs fn with an acquired connection and releases it on every exit path.
func (db *DB) WithConn(ctx context.Context, fn func(ctx context.Context, conn *Conn) error) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(ctx, conn)
}

// Ping verifies the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.WithConn(ctx, func(ctx context.Context, conn *Conn) error {
		return conn.res.Value().PingContext(ctx)
	})
}

// Close rejects new acquisitions, waits for held connections to be released and
// closes everything.
func (db *DB) Close() error {
	db.pool.Close()
	db.logger.Debug("connection pool closed")
	return db.sqlDB.Close()
}

// Stat is a snapshot of pool usage.
type Stat struct {
	Acquired        int32
	Idle            int32
	Total           int32
	Max             int32
	AcquireCount    int64
	CanceledAcquire int64
	EmptyAcquire    int64
}

// Stat returns current pool statistics.
func (db *DB) Stat() Stat {
	s := db.pool.Stat()
	return Stat{
		Acquired:        s.AcquiredResources(),
		Idle:            s.IdleResources(),
		Total:           s.TotalResources(),
		Max:             s.MaxResources(),
		AcquireCount:    s.AcquireCount(),
		CanceledAcquire: s.CanceledAcquireCount(),
		EmptyAcquire:    s.EmptyAcquireCount(),
	}
}

// Conn is a connection checked out of a DB.
type Conn struct {
	res  *puddle.Resource[*sql.Conn]
	db   *DB
	once sync.Once
	mu   sync.Mutex
	bad  bool
	done bool
}

// Raw returns the underlying *sql.Conn. It must not be used after Release.
func (c *Conn) Raw() *sql.Conn {
	return c.res.Value()
}

// Release returns the connection to the pool. A connection that failed with a broken
// connection error is destroyed instead. Release is safe to call more than once.
func (c *Conn) Release() {
	c.once.Do(func() {
		c.mu.Lock()
		bad := c.bad
		c.done = true
		c.mu.Unlock()

		if bad {
			c.res.Destroy()
			return
		}
		c.res.Release()
	})
}

func (c *Conn) sqlConn() (*sql.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return nil, ErrNoConnection
	}
	return c.res.Value(), nil
}

// markBroken flags the connection for destruction on Release when err says it is unusable.
func (c *Conn) markBroken(err error) {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		c.mu.Lock()
		c.bad = true
		c.mu.Unlock()
	}
}
