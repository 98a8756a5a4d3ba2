package launcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/cryptox"
	"github.com/dmitrijs2005/rdpmanager/internal/filex"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
	"github.com/google/uuid"
)

// DefaultCleanupDelay is how long staged credentials and the descriptor
// outlive a launch.
const DefaultCleanupDelay = 30 * time.Second

// credentialTimeout bounds every credential store call.
const credentialTimeout = 10 * time.Second

// LaunchHandle describes the transient artifacts of one launch.
type LaunchHandle struct {
	ID             string
	ConnectionID   int64
	DescriptorPath string
	// CredentialTarget is empty when no credentials were staged.
	CredentialTarget string
	CleanupAt        time.Time
}

type Options struct {
	DescriptorDir string
	CleanupDelay  time.Duration
}

// Launcher is safe for concurrent use.
type Launcher struct {
	opts    Options
	creds   CredentialStager
	spawner Spawner
	sched   Scheduler
	logger  logging.Logger
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]LaunchHandle
}

func New(opts Options, creds CredentialStager, spawner Spawner, sched Scheduler, logger logging.Logger) *Launcher {
	if opts.CleanupDelay <= 0 {
		opts.CleanupDelay = DefaultCleanupDelay
	}
	return &Launcher{
		opts:    opts,
		creds:   creds,
		spawner: spawner,
		sched:   sched,
		logger:  logger,
		now:     time.Now,
		pending: make(map[string]LaunchHandle),
	}
}

// Connect launches the native client for c.
//
// Decryption failures and a missing hostname are reported as errors matching
// common.ErrConnection. A client that fails to start yields common.ErrLaunch;
// anything already staged is removed before returning.
func (l *Launcher) Connect(ctx context.Context, c *models.Connection, ec cryptox.EncryptionContext) (*LaunchHandle, error) {
	if strings.TrimSpace(c.Hostname) == "" {
		return nil, fmt.Errorf("%w: connection %d has no hostname", common.ErrConnection, c.ID)
	}

	var password string
	if c.HasSecret() {
		var err error
		password, err = cryptox.Decrypt(c.EncryptedPassword, ec)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot decrypt password for %q: %w", common.ErrConnection, c.Name, err)
		}
	}

	h := LaunchHandle{
		ID:           uuid.NewString(),
		ConnectionID: c.ID,
	}
	log := l.logger.With("launch_id", h.ID, "connection_id", c.ID, "host", c.Hostname)

	if c.Username != "" && password != "" {
		target := CredentialTarget(c.Hostname)
		sctx, cancel := context.WithTimeout(ctx, credentialTimeout)
		err := l.creds.Stage(sctx, target, c.Username, password)
		cancel()
		if err != nil {
			// The client still starts and prompts for the password.
			log.Warn(ctx, "credential staging failed", "error", err)
		} else {
			h.CredentialTarget = target
		}
	}

	dir, err := filex.EnsureDir(l.opts.DescriptorDir, 0o700)
	if err != nil {
		l.cleanup(ctx, h)
		return nil, fmt.Errorf("%w: %w", common.ErrLaunch, err)
	}
	h.DescriptorPath = filepath.Join(dir, fmt.Sprintf("conn_%d_%s%s", c.ID, h.ID, DescriptorExt))
	if err := filex.WritePrivateFile(h.DescriptorPath, []byte(RenderDescriptor(c))); err != nil {
		l.cleanup(ctx, h)
		return nil, fmt.Errorf("%w: %w", common.ErrLaunch, err)
	}

	if err := l.spawner.Spawn(h.DescriptorPath); err != nil {
		l.cleanup(ctx, h)
		return nil, fmt.Errorf("%w: %w", common.ErrLaunch, err)
	}

	h.CleanupAt = l.now().Add(l.opts.CleanupDelay)
	l.mu.Lock()
	l.pending[h.ID] = h
	l.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	l.sched.AfterFunc(l.opts.CleanupDelay, func() { l.release(bg, h.ID) })

	log.Info(ctx, "client launched", "descriptor", h.DescriptorPath, "credentials_staged", h.CredentialTarget != "")
	return &h, nil
}

// Pending returns the number of launches whose cleanup has not run yet.
func (l *Launcher) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Flush runs every pending cleanup now. Timers armed for them become no-ops.
func (l *Launcher) Flush(ctx context.Context) {
	l.mu.Lock()
	ids := make([]string, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	for _, id := range ids {
		l.release(ctx, id)
	}
}

func (l *Launcher) release(ctx context.Context, id string) {
	l.mu.Lock()
	h, ok := l.pending[id]
	delete(l.pending, id)
	l.mu.Unlock()

	if ok {
		l.cleanup(ctx, h)
	}
}

// cleanup removes the staged credential and descriptor of h. Failures are
// logged and otherwise ignored.
func (l *Launcher) cleanup(ctx context.Context, h LaunchHandle) {
	if h.CredentialTarget != "" {
		cctx, cancel := context.WithTimeout(ctx, credentialTimeout)
		if err := l.creds.Remove(cctx, h.CredentialTarget); err != nil {
			l.logger.Warn(ctx, "credential cleanup failed", "launch_id", h.ID, "error", err)
		}
		cancel()
	}
	if h.DescriptorPath != "" {
		if err := filex.RemoveIfExists(h.DescriptorPath); err != nil {
			l.logger.Debug(ctx, "descriptor cleanup failed", "launch_id", h.ID, "error", err)
		}
	}
	l.logger.Debug(ctx, "launch cleaned up", "launch_id", h.ID)
}
