package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/zyrix-club/internal/domain/sponsor"
)

func validSponsor() sponsor.Sponsor {
	return sponsor.Sponsor{
		Rep:          "Luis Perez",
		ContactEmail: "luis@acme.do",
		Brand:        "Acme",
		Rationale:    "club visibility",
		Offer:        "materials",
		Expectation:  "logo placement",
	}
}

func TestSponsors_Create_DefaultsToPending(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))

	created, err := sponsors.Create(validSponsor())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, sponsor.StatusPending, created.Status)
}

func TestSponsors_Create_IgnoresSuppliedStatus(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))
	sp := validSponsor()
	sp.Status = sponsor.StatusActive

	created, err := sponsors.Create(sp)

	require.NoError(t, err)
	assert.Equal(t, sponsor.StatusPending, created.Status)
}

func TestSponsors_ApproveAndReject(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))
	first, err := sponsors.Create(validSponsor())
	require.NoError(t, err)
	second, err := sponsors.Create(validSponsor())
	require.NoError(t, err)

	approved, err := sponsors.Approve(first.ID)
	require.NoError(t, err)
	assert.Equal(t, sponsor.StatusActive, approved.Status)

	rejected, err := sponsors.Reject(second.ID)
	require.NoError(t, err)
	assert.Equal(t, sponsor.StatusRejected, rejected.Status)
}

func TestSponsors_DecisionsAreTerminal(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))
	created, err := sponsors.Create(validSponsor())
	require.NoError(t, err)
	_, err = sponsors.Approve(created.ID)
	require.NoError(t, err)

	_, err = sponsors.Reject(created.ID)
	assert.ErrorIs(t, err, sponsor.ErrAlreadyDecided)

	_, err = sponsors.Approve(created.ID)
	assert.ErrorIs(t, err, sponsor.ErrAlreadyDecided)

	stored, findErr := sponsors.Find(created.ID)
	require.NoError(t, findErr)
	assert.Equal(t, sponsor.StatusActive, stored.Status)
}

func TestSponsors_Decide_Missing(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))

	_, err := sponsors.Approve("ghost")

	assert.ErrorIs(t, err, sponsor.ErrNotFound)
}

func TestSponsors_ListByStatus(t *testing.T) {
	sponsors := NewSponsors(newTestSnapshotStore(t))
	first, err := sponsors.Create(validSponsor())
	require.NoError(t, err)
	_, err = sponsors.Create(validSponsor())
	require.NoError(t, err)
	_, err = sponsors.Approve(first.ID)
	require.NoError(t, err)

	pending, err := sponsors.ListByStatus(sponsor.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	active, err := sponsors.ListByStatus(sponsor.StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
