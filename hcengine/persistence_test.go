package hcengine

import (
	"path/filepath"
	"testing"
	"time"

	"hcgov/store/boltstore"
	"hcgov/tokenledger"

	"github.com/stretchr/testify/require"
)

// TestEngineMutationsPersistThroughJournal drives CreateProposal, Vote, and
// Stake through a live Engine wired with WithAuditSink, then reopens the
// Bolt file independently of the Engine to confirm the on-disk journal
// reflects every mutation — not just what boltstore's own package tests
// exercise directly, but what the Engine's write path actually produces.
func TestEngineMutationsPersistThroughJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hcgov.db")

	journal, err := boltstore.Open(path)
	require.NoError(t, err)

	voteToken := tokenledger.NewInMemory()
	stakeToken := tokenledger.NewInMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	engine, err := NewEngine(voteToken, stakeToken, scenarioConfig(),
		WithClock(func() time.Time { return now }),
		WithAuditSink(journal),
	)
	require.NoError(t, err)

	proposer, voter, staker := newAddress(t), newAddress(t), newAddress(t)
	voteToken.Mint(voter, wei(100))
	stakeToken.Mint(staker, wei(50))
	stakeToken.Approve(staker, stakeToken.CustodyAddress(), wei(50))

	id, err := engine.CreateProposal(proposer, "persisted proposal")
	require.NoError(t, err)
	// Stake before voting: the sole voter's yea resolves the proposal, and a
	// resolved proposal no longer accepts stakes.
	require.NoError(t, engine.Stake(staker, id, wei(20), true))
	require.NoError(t, engine.Vote(voter, id, true))

	live, err := engine.GetProposal(id)
	require.NoError(t, err)
	liveAuditLen := len(engine.AuditLog())

	require.NoError(t, journal.Close())

	reloadedStore, reopened, err := boltstore.Load(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, uint64(1), reloadedStore.Len())
	restored, err := reloadedStore.Get(id)
	require.NoError(t, err)

	require.Equal(t, live.Metadata, restored.Metadata)
	require.Equal(t, live.CreatedBy.String(), restored.CreatedBy.String())
	require.Equal(t, live.State, restored.State)
	require.Equal(t, live.Yea.String(), restored.Yea.String())
	require.Equal(t, live.Nay.String(), restored.Nay.String())
	require.Equal(t, live.Upstake.String(), restored.Upstake.String())
	require.Equal(t, live.Downstake.String(), restored.Downstake.String())
	require.Equal(t, live.VoteOf(voter).Choice, restored.VoteOf(voter).Choice)
	require.Equal(t, live.VoteOf(voter).Weight.String(), restored.VoteOf(voter).Weight.String())
	require.Equal(t, live.UpstakeOf(staker).String(), restored.UpstakeOf(staker).String())

	require.Equal(t, liveAuditLen, len(reloadedStore.AuditLog()))
	require.True(t, liveAuditLen > 0)
}
