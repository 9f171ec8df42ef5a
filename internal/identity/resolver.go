package identity

import (
	"context"
	"log"
	"sync"
	"time"

	"attendance/internal/model"

	"github.com/google/uuid"
)

// DefaultResolveTimeout bounds a single profile lookup. Past it the caller
// stays authenticated but without profile data until a later transition
// resolves.
const DefaultResolveTimeout = 5 * time.Second

// Session is the authenticated principal as issued by the auth collaborator,
// independent of any business profile.
type Session struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

// Snapshot is the published (principal, profile) pair. Readers must treat it
// as immutable; the resolver is the only writer.
type Snapshot struct {
	Session *Session
	Profile *model.User
}

// SignedIn reports whether a principal is present, regardless of whether the
// profile resolved.
func (s Snapshot) SignedIn() bool { return s.Session != nil }

// ProfileLookup is the data-store side of resolution: fetch the active
// profile bound to an email.
type ProfileLookup interface {
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionInvalidator is the auth collaborator's remote sign-out.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, token string) error
}

// Resolver converts auth transitions into published snapshots. Transitions
// are sequenced: a profile lookup still in flight for an older transition
// can never overwrite the state produced by a newer one.
type Resolver struct {
	lookup      ProfileLookup
	invalidator SessionInvalidator
	timeout     time.Duration

	mu   sync.Mutex
	seq  uint64
	cur  Snapshot
	subs map[chan Snapshot]struct{}
}

// NewResolver builds a resolver with the default 5s lookup bound.
func NewResolver(lookup ProfileLookup, invalidator SessionInvalidator) *Resolver {
	return &Resolver{
		lookup:      lookup,
		invalidator: invalidator,
		timeout:     DefaultResolveTimeout,
		subs:        make(map[chan Snapshot]struct{}),
	}
}

// SetTimeout overrides the lookup bound.
func (r *Resolver) SetTimeout(d time.Duration) { r.timeout = d }

// OnAuthChange handles one auth transition. The principal is published
// synchronously; the profile lookup runs asynchronously under the timeout
// bound and its result is discarded if a newer transition arrived meanwhile.
func (r *Resolver) OnAuthChange(ctx context.Context, session *Session) {
	r.mu.Lock()
	r.seq++
	mine := r.seq
	r.cur = Snapshot{Session: session}
	r.publishLocked()
	r.mu.Unlock()

	if session == nil || session.Email == "" {
		return
	}

	go r.resolve(ctx, mine, session)
}

func (r *Resolver) resolve(ctx context.Context, seq uint64, session *Session) {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	profile, err := r.lookup.GetActiveByEmail(lookupCtx, session.Email)
	if err != nil {
		// Degrade: signed in without elevated profile data.
		log.Printf("identity: profile resolution for %s failed: %v", session.Email, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq != seq {
		// A newer transition won the race; drop this result.
		return
	}
	r.cur = Snapshot{Session: session, Profile: profile}
	r.publishLocked()
}

// SignOut clears local state synchronously and then invalidates the remote
// session. Remote failure is reported, never blocks the local sign-out.
func (r *Resolver) SignOut(ctx context.Context) {
	r.mu.Lock()
	r.seq++
	token := ""
	if r.cur.Session != nil {
		token = r.cur.Session.Token
	}
	r.cur = Snapshot{}
	r.publishLocked()
	r.mu.Unlock()

	if r.invalidator == nil || token == "" {
		return
	}
	if err := r.invalidator.Invalidate(ctx, token); err != nil {
		log.Printf("identity: remote session invalidation failed: %v", err)
	}
}

// Snapshot returns the current published state.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur
}

// Subscribe delivers every published snapshot. Slow consumers lose updates
// rather than stalling the writer. The returned func cancels the
// subscription.
func (r *Resolver) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subs[ch]; ok {
			delete(r.subs, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Resolver) publishLocked() {
	for ch := range r.subs {
		select {
		case ch <- r.cur:
		default:
		}
	}
}
