package scheduler

import "context"

// RunOnce exposes a single polling pass to tests.
func (r *Reminder) RunOnce(ctx context.Context) { r.runOnce(ctx) }
