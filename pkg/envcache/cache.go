package envcache

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=cache.go -destination=mocks/cache.gen.go -package=mocks

// Cache interface provides environment acquisition and maintenance.
type Cache interface {
	// Acquire returns the provisioned environment for the request, provisioning
	// it on first use. Concurrent calls for the same key collapse into a single
	// provisioning operation.
	Acquire(ctx context.Context, req Request) (*Environment, error)
	// Clean removes every cached environment and its on-disk directory.
	Clean(ctx context.Context) error
	// GC removes cached environments whose key is not in the in-use set.
	GC(ctx context.Context, inUse map[string]struct{}) error
	// Close flushes and closes the persisted index.
	Close() error
	// SetLogger sets the logger for this cache instance.
	SetLogger(logger logger.Logger)
}

// NewCacheParams contains parameters for creating a new Cache instance.
type NewCacheParams struct {
	FS          fs.FS
	Logger      logger.Logger
	Provisioner Provisioner
	// Root is the durable cache directory holding the index and environments.
	Root string
}

// call is an in-flight provisioning operation shared by concurrent callers.
type call struct {
	done chan struct{}
	env  *Environment
	err  error
}

type realCache struct {
	fs          fs.FS
	logger      logger.Logger
	provisioner Provisioner
	root        string
	db          *sql.DB

	mu       sync.Mutex
	envs     map[string]*Environment
	inflight map[string]*call
	// failed caches provisioning failures as terminal for the remainder of the
	// run. Failures are not persisted: a later run retries.
	failed map[string]error
	closed bool
}

// NewCache creates a new Cache instance rooted at params.Root.
func NewCache(ctx context.Context, params NewCacheParams) (Cache, error) {
	if params.FS == nil {
		params.FS = fs.NewFS()
	}
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}

	if err := params.FS.MkdirAll(params.Root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache root: %w", err)
	}

	db, err := openStore(ctx, filepath.Join(params.Root, "db.sqlite"))
	if err != nil {
		return nil, err
	}

	return &realCache{
		fs:          params.FS,
		logger:      params.Logger,
		provisioner: params.Provisioner,
		root:        params.Root,
		db:          db,
		envs:        make(map[string]*Environment),
		inflight:    make(map[string]*call),
		failed:      make(map[string]error),
	}, nil
}

// SetLogger sets the logger for this cache instance.
func (c *realCache) SetLogger(logger logger.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

// Acquire returns the provisioned environment for the request.
func (c *realCache) Acquire(ctx context.Context, req Request) (*Environment, error) {
	key := req.Key()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrCacheClosed
	}
	if err, ok := c.failed[key]; ok {
		c.mu.Unlock()
		return nil, err
	}
	if env, ok := c.envs[key]; ok {
		c.mu.Unlock()
		return env, nil
	}
	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		// Another caller is provisioning this key: wait for its outcome.
		select {
		case <-inflight.done:
			return inflight.env, inflight.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	current := &call{done: make(chan struct{})}
	c.inflight[key] = current
	c.mu.Unlock()

	env, err := c.resolve(ctx, req, key)

	c.mu.Lock()
	delete(c.inflight, key)
	if err != nil {
		c.failed[key] = err
	} else {
		c.envs[key] = env
	}
	c.mu.Unlock()

	current.env = env
	current.err = err
	close(current.done)
	return env, err
}

// resolve loads a persisted environment or provisions a new one. A per-key
// file lock makes this safe against concurrent engine invocations on the same
// machine.
func (c *realCache) resolve(ctx context.Context, req Request, key string) (*Environment, error) {
	unlock, err := c.fs.FileLock(filepath.Join(c.root, "locks", key))
	if err != nil {
		return nil, fmt.Errorf("failed to lock environment key: %w", err)
	}
	defer unlock()

	// Another process may have provisioned this key while we waited.
	env, err := lookupRow(ctx, c.db, key)
	if err != nil {
		return nil, err
	}
	if env != nil {
		usable, err := c.envDirUsable(env.Path)
		if err != nil {
			return nil, err
		}
		if usable {
			c.logger.Logf("Environment cache hit for key %s", key)
			return env, nil
		}
		// Stale row: the directory was removed behind our back.
		c.logger.Logf("Environment directory missing for key %s, re-provisioning", key)
		if err := deleteRow(ctx, c.db, key); err != nil {
			return nil, err
		}
	}

	return c.provision(ctx, req, key)
}

// envDirUsable reports whether a persisted environment directory still exists
// on disk.
func (c *realCache) envDirUsable(path string) (bool, error) {
	exists, err := c.fs.Exists(path)
	if err != nil || !exists {
		return false, err
	}
	return c.fs.IsDir(path)
}

// provision invokes the external provisioner and records the result. Either
// the environment is fully recorded or its directory is rolled back.
func (c *realCache) provision(ctx context.Context, req Request, key string) (*Environment, error) {
	dir := filepath.Join(c.root, "envs", uuid.New().String())
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create environment directory: %w", err)
	}

	c.logger.Logf("Provisioning environment for key %s (language %s)", key, req.Language)
	env, err := c.provisioner.Provision(ctx, req, dir)
	if err != nil {
		c.rollback(dir)
		return nil, fmt.Errorf("%w: %w", ErrProvisionFailed, err)
	}

	env.Key = key
	env.Path = dir
	if err := insertRow(ctx, c.db, req, env); err != nil {
		c.rollback(dir)
		return nil, err
	}
	return env, nil
}

// rollback removes a partially-provisioned environment directory. The
// provisioning error is what the caller reports; a failed removal is only
// logged.
func (c *realCache) rollback(dir string) {
	if err := c.fs.RemoveAll(dir); err != nil {
		c.logger.Logf("Failed to remove environment directory %s: %v", dir, err)
	}
}

// Clean removes every cached environment and its on-disk directory.
func (c *realCache) Clean(ctx context.Context) error {
	envs, err := listRows(ctx, c.db)
	if err != nil {
		return err
	}
	for _, env := range envs {
		if err := c.fs.RemoveAll(env.Path); err != nil {
			return fmt.Errorf("failed to remove environment %s: %w", env.Key, err)
		}
		if err := deleteRow(ctx, c.db, env.Key); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.envs = make(map[string]*Environment)
	c.failed = make(map[string]error)
	c.mu.Unlock()
	return nil
}

// GC removes cached environments whose key is not in the in-use set.
func (c *realCache) GC(ctx context.Context, inUse map[string]struct{}) error {
	envs, err := listRows(ctx, c.db)
	if err != nil {
		return err
	}
	for _, env := range envs {
		if _, used := inUse[env.Key]; used {
			continue
		}
		c.logger.Logf("Garbage-collecting environment %s", env.Key)
		if err := c.fs.RemoveAll(env.Path); err != nil {
			return fmt.Errorf("failed to remove environment %s: %w", env.Key, err)
		}
		if err := deleteRow(ctx, c.db, env.Key); err != nil {
			return err
		}
		c.mu.Lock()
		delete(c.envs, env.Key)
		c.mu.Unlock()
	}
	return nil
}

// Close flushes and closes the persisted index.
func (c *realCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}
