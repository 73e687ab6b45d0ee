package screen

import (
	"context"
	"sync"

	"techmarket/internal/domain"

	"go.uber.org/zap"
)

// Visit is one stay on a route. Its context is cancelled when the user
// navigates away, and results started under it are discarded afterwards.
type Visit struct {
	route domain.Route
	gen   uint64
	ctx   context.Context
}

// Context is cancelled when the visit ends
func (v Visit) Context() context.Context { return v.ctx }

// Route is the screen being visited
func (v Visit) Route() domain.Route { return v.route }

// Navigator tracks the current route for the terminal front-end.
type Navigator struct {
	mu     sync.Mutex
	parent context.Context
	route  domain.Route
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewNavigator starts on the access screen. Every visit context derives
// from parent.
func NewNavigator(parent context.Context, logger *zap.Logger) *Navigator {
	n := &Navigator{parent: parent, logger: logger}
	n.enter(domain.RouteAccess)
	return n
}

// enter must be called with mu held.
func (n *Navigator) enter(route domain.Route) {
	if n.cancel != nil {
		n.cancel()
	}
	n.route = route
	n.gen++
	n.ctx, n.cancel = context.WithCancel(n.parent)
}

// Navigate replaces the current route, cancelling work of the previous visit.
func (n *Navigator) Navigate(route domain.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.logger.Debug("Navigate", zap.String("from", string(n.route)), zap.String("to", string(route)))
	n.enter(route)
}

// Current returns the route on screen
func (n *Navigator) Current() domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// Visit returns the current visit.
func (n *Navigator) Visit() Visit {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Visit{route: n.route, gen: n.gen, ctx: n.ctx}
}

// IsCurrent reports whether no navigation happened since v was taken.
func (n *Navigator) IsCurrent(v Visit) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return v.gen == n.gen
}

// Close cancels the current visit.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
}
