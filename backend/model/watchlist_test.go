package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToWatchlistIsIdempotent(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice", "Alice", "alice@uni.edu")
	math := mustCreateSubject(t, "Mathematics", "#3B82F6")
	note := mustCreateNote(t, user, math, "Calculus", NoteTypeNotes, 2023)

	first, err := AddToWatchlist(user.ID, note.ID)
	require.NoError(t, err)
	second, err := AddToWatchlist(user.ID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := GetWatchlistForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRemoveFromWatchlistIsIdempotent(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice", "Alice", "alice@uni.edu")
	math := mustCreateSubject(t, "Mathematics", "#3B82F6")
	note := mustCreateNote(t, user, math, "Calculus", NoteTypeNotes, 2023)

	// Removing something never added does not error.
	require.NoError(t, RemoveFromWatchlist(user.ID, note.ID))

	_, err := AddToWatchlist(user.ID, note.ID)
	require.NoError(t, err)
	require.NoError(t, RemoveFromWatchlist(user.ID, note.ID))
	require.NoError(t, RemoveFromWatchlist(user.ID, note.ID))

	entries, err := GetWatchlistForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIsInWatchlist(t *testing.T) {
	setupTestDB(t)

	user := mustCreateUser(t, "alice", "Alice", "alice@uni.edu")
	other := mustCreateUser(t, "bob", "Bob", "bob@uni.edu")
	math := mustCreateSubject(t, "Mathematics", "#3B82F6")
	note := mustCreateNote(t, user, math, "Calculus", NoteTypeNotes, 2023)

	inList, err := IsInWatchlist(user.ID, note.ID)
	require.NoError(t, err)
	assert.False(t, inList)

	_, err = AddToWatchlist(user.ID, note.ID)
	require.NoError(t, err)

	inList, err = IsInWatchlist(user.ID, note.ID)
	require.NoError(t, err)
	assert.True(t, inList)

	// Membership is per user.
	inList, err = IsInWatchlist(other.ID, note.ID)
	require.NoError(t, err)
	assert.False(t, inList)
}
