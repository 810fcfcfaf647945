// Package revalidate invalidates cached page responses after content changes
// and notifies connected websocket clients.
package revalidate

import "log/slog"

// Revalidator purges cached pages and announces the purge. Either collaborator
// may be nil.
type Revalidator struct {
	cache  *PageCache
	hub    *Hub
	logger *slog.Logger
}

func New(cache *PageCache, hub *Hub, logger *slog.Logger) *Revalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Revalidator{cache: cache, hub: hub, logger: logger}
}

func (r *Revalidator) Revalidate(paths ...string) {
	if len(paths) == 0 {
		return
	}
	removed := 0
	if r.cache != nil {
		for _, p := range paths {
			removed += r.cache.Purge(p)
		}
	}
	if r.hub != nil {
		r.hub.Publish(paths)
	}
	r.logger.Debug("pages revalidated", "paths", paths, "purged", removed)
}
