package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/zyrix-club/internal/domain/sponsor"
	"github.com/example/zyrix-club/internal/store"
)

// Sponsors is the sponsorship request repository. The only updates are the
// two one-way decisions; there is no free-form patch.
type Sponsors struct {
	store *store.Store
}

func NewSponsors(s *store.Store) *Sponsors {
	return &Sponsors{store: s}
}

// List returns all requests in snapshot order.
func (r *Sponsors) List() ([]sponsor.Sponsor, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return snap.Sponsors, nil
}

// ListByStatus returns the requests holding the given status.
func (r *Sponsors) ListByStatus(status sponsor.Status) ([]sponsor.Sponsor, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]sponsor.Sponsor, 0, len(snap.Sponsors))
	for _, sp := range snap.Sponsors {
		if sp.Status == status {
			out = append(out, sp)
		}
	}
	return out, nil
}

// Find returns the request with the given id, or sponsor.ErrNotFound.
func (r *Sponsors) Find(id string) (*sponsor.Sponsor, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	sp := snap.FindSponsor(id)
	if sp == nil {
		return nil, sponsor.ErrNotFound
	}
	return sp, nil
}

// Create validates sp, assigns a generated id when absent and appends it
// with status pending.
func (r *Sponsors) Create(sp sponsor.Sponsor) (*sponsor.Sponsor, error) {
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	sp.Status = sponsor.StatusPending
	sp.CreatedAt = time.Now()

	err := r.store.Update(func(snap *store.Snapshot) error {
		snap.Sponsors = append(snap.Sponsors, sp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// Approve moves a pending request to active.
func (r *Sponsors) Approve(id string) (*sponsor.Sponsor, error) {
	return r.decide(id, sponsor.StatusActive)
}

// Reject moves a pending request to rejected.
func (r *Sponsors) Reject(id string) (*sponsor.Sponsor, error) {
	return r.decide(id, sponsor.StatusRejected)
}

func (r *Sponsors) decide(id string, target sponsor.Status) (*sponsor.Sponsor, error) {
	var decided sponsor.Sponsor
	err := r.store.Update(func(snap *store.Snapshot) error {
		sp := snap.FindSponsor(id)
		if sp == nil {
			return sponsor.ErrNotFound
		}
		if !sp.CanTransitionTo(target) {
			return sp.TransitionError(target)
		}
		sp.Status = target
		decided = *sp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}
