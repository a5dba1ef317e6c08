package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-relay/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantRepository_SetSession(t *testing.T) {
	ctx, st := suite.New(t)

	participantRepo := NewParticipantRepository(st.Storage, time.Minute)

	// Given: a participant in session s-1
	// When: SetSession is called
	err := participantRepo.SetSession(ctx, "player-a", "s-1")

	// Then: the index resolves to the session
	require.NoError(t, err)

	sessionID, err := participantRepo.GetSessionID(ctx, "player-a")
	require.NoError(t, err)
	assert.Equal(t, "s-1", sessionID)
}

func TestParticipantRepository_GetSessionID(t *testing.T) {
	t.Run("GetSessionID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		participantRepo := NewParticipantRepository(st.Storage, time.Minute)

		// When: an unknown participant is resolved
		sessionID, err := participantRepo.GetSessionID(ctx, "9999999")

		// Then: ErrParticipantNotFound is returned
		require.ErrorIs(t, err, ErrParticipantNotFound)
		assert.Empty(t, sessionID)
	})

	t.Run("GetSessionID_AfterRelease", func(t *testing.T) {
		ctx, st := suite.New(t)

		participantRepo := NewParticipantRepository(st.Storage, time.Minute)

		// Given: an indexed participant whose session is then released
		require.NoError(t, participantRepo.SetSession(ctx, "player-a", "s-1"))
		require.NoError(t, participantRepo.ReleaseSession(ctx, "player-a", "s-1"))

		// When: the participant is resolved
		_, err := participantRepo.GetSessionID(ctx, "player-a")

		// Then: ErrParticipantNotFound is returned
		require.ErrorIs(t, err, ErrParticipantNotFound)
	})
}

func TestParticipantRepository_ReleaseSession(t *testing.T) {
	t.Run("Keeps an entry that moved to a newer session", func(t *testing.T) {
		ctx, st := suite.New(t)

		participantRepo := NewParticipantRepository(st.Storage, time.Minute)

		// Given: player-a left s-old and is now indexed to s-new
		require.NoError(t, participantRepo.SetSession(ctx, "player-a", "s-old"))
		require.NoError(t, participantRepo.SetSession(ctx, "player-a", "s-new"))

		// When: s-old is released late
		err := participantRepo.ReleaseSession(ctx, "player-a", "s-old")

		// Then: the entry still points at s-new
		require.NoError(t, err)

		sessionID, err := participantRepo.GetSessionID(ctx, "player-a")
		require.NoError(t, err)
		assert.Equal(t, "s-new", sessionID)
	})

	t.Run("Missing entry is not an error", func(t *testing.T) {
		ctx, st := suite.New(t)

		participantRepo := NewParticipantRepository(st.Storage, time.Minute)

		// When: an unknown participant is released
		err := participantRepo.ReleaseSession(ctx, "player-z", "s-1")

		// Then: nothing fails
		require.NoError(t, err)
	})
}
