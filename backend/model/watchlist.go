package model

import (
	"github.com/burugo/thing"
)

// WatchlistEntry is a bookmark join row between a user and a note. At most one
// row exists per (user_id, note_id) pair; add and remove are idempotent.
type WatchlistEntry struct {
	thing.BaseModel
	UserID int64 `db:"user_id,index:idx_user_note" json:"user_id"`
	NoteID int64 `db:"note_id,index:idx_user_note" json:"note_id"`
}

func (w *WatchlistEntry) TableName() string {
	return "watchlist"
}

var WatchlistDB *thing.Thing[*WatchlistEntry]

// WatchlistInit initializes WatchlistDB during InitDB.
func WatchlistInit() error {
	var err error
	WatchlistDB, err = thing.Use[*WatchlistEntry]()
	if err != nil {
		return err
	}
	return nil
}

func getWatchlistEntry(userID, noteID int64) (*WatchlistEntry, error) {
	entries, err := WatchlistDB.Where("user_id = ? AND note_id = ?", userID, noteID).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// AddToWatchlist bookmarks a note for a user. Adding an existing bookmark
// returns the existing entry without creating a duplicate.
func AddToWatchlist(userID, noteID int64) (*WatchlistEntry, error) {
	existing, err := getWatchlistEntry(userID, noteID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	entry := &WatchlistEntry{UserID: userID, NoteID: noteID}
	if err := WatchlistDB.Save(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveFromWatchlist deletes the bookmark if present; removing a missing one
// is a no-op.
func RemoveFromWatchlist(userID, noteID int64) error {
	entry, err := getWatchlistEntry(userID, noteID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	return WatchlistDB.Delete(entry)
}

// IsInWatchlist reports whether the user has bookmarked the note.
func IsInWatchlist(userID, noteID int64) (bool, error) {
	entry, err := getWatchlistEntry(userID, noteID)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// GetWatchlistForUser returns all bookmark rows of a user.
func GetWatchlistForUser(userID int64) ([]*WatchlistEntry, error) {
	return WatchlistDB.Where("user_id = ?", userID).All()
}
