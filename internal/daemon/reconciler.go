package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/paneld/internal/host"
	"github.com/1broseidon/paneld/internal/oplog"
	"github.com/1broseidon/paneld/internal/registry"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically prunes registry entries whose host windows no
// longer exist, e.g. panels the user closed via the window manager. Without
// it the registry would keep believing in windows that are long gone.
type Reconciler struct {
	interval time.Duration
	svc      *registry.Service
	hst      host.Host
	actions  *oplog.Logger
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler over the panel service and its host.
func NewReconciler(cfg ReconcilerConfig, svc *registry.Service, hst host.Host, actions *oplog.Logger) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Reconciler{
		interval: interval,
		svc:      svc,
		hst:      hst,
		actions:  actions,
		logger:   cfg.Logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	pruned := r.Prune()
	if len(pruned) > 0 {
		r.logger.Info("pruned dead panels", "count", len(pruned), "ids", pruned)
	}
}

// Prune removes registry entries for windows the host no longer has and
// returns the pruned ids.
func (r *Reconciler) Prune() []string {
	var pruned []string
	for _, id := range r.svc.List() {
		if r.hst.Exists(host.WindowID(id)) {
			continue
		}
		r.svc.Registry().Remove(id)
		r.actions.Log(oplog.ActionReconcile, id, map[string]interface{}{"reason": "window gone"})
		pruned = append(pruned, id)
	}
	return pruned
}
