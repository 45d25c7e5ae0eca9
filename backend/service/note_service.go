package service

import (
	"context"
	"fmt"

	"learnnest/backend/common"
	apperrors "learnnest/backend/common/errors"
	"learnnest/backend/library/storage"
	"learnnest/backend/model"
)

// Catalog view sizes of the dashboard queries.
const (
	recentNotesLimit     = 6
	popularNotesLimit    = 6
	popularRecencyWindow = 10
)

// blobStore is the configured external file store. It stays nil when no
// endpoint is configured; file URLs then resolve to null and upload handles
// are refused.
var blobStore storage.BlobStore

// SetBlobStore wires the external blob store at startup.
func SetBlobStore(store storage.BlobStore) {
	blobStore = store
}

// NoteView is a catalog entry as served to clients: the stored note plus the
// resolved file URL (null when the blob is missing) and decoded tags. Entries
// coming from the watchlist also carry the bookmark row's own id.
type NoteView struct {
	*model.Note
	Tags        []string `json:"tags,omitempty"`
	FileURL     *string  `json:"file_url"`
	WatchlistID int64    `json:"watchlist_id,omitempty"`
}

func newNoteView(ctx context.Context, note *model.Note) *NoteView {
	view := &NoteView{
		Note:    note,
		FileURL: resolveFileURL(ctx, note.FileID),
	}
	tags, err := note.GetTags()
	if err != nil {
		common.SysError(fmt.Sprintf("failed to decode tags of note %d: %s", note.ID, err.Error()))
	}
	view.Tags = tags
	return view
}

// resolveFileURL maps a blob id to a retrievable URL, nil when the blob is
// missing or no store is configured. A nil URL is data, not an error: the UI
// renders it as "file not available".
func resolveFileURL(ctx context.Context, fileID string) *string {
	if blobStore == nil {
		return nil
	}
	url := blobStore.ResolveURL(ctx, fileID)
	if url == "" {
		return nil
	}
	return &url
}

func newNoteViews(ctx context.Context, notes []*model.Note) []*NoteView {
	views := make([]*NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, newNoteView(ctx, note))
	}
	return views
}

// ListNotes serves the filtered/searched catalog view.
func ListNotes(ctx context.Context, filter model.NoteFilter) ([]*NoteView, error) {
	notes, err := model.ListNotes(filter)
	if err != nil {
		return nil, err
	}
	return newNoteViews(ctx, notes), nil
}

// GetNoteByID fetches a single catalog entry with its resolved URL.
func GetNoteByID(ctx context.Context, id int64) (*NoteView, error) {
	note, err := model.GetNoteByID(id)
	if err != nil {
		return nil, err
	}
	return newNoteView(ctx, note), nil
}

// GetPopularNotes serves the trending-among-recent view.
func GetPopularNotes(ctx context.Context) ([]*NoteView, error) {
	notes, err := model.GetPopularNotes(popularNotesLimit, popularRecencyWindow)
	if err != nil {
		return nil, err
	}
	return newNoteViews(ctx, notes), nil
}

// GetRecentNotes serves the newest uploads.
func GetRecentNotes(ctx context.Context) ([]*NoteView, error) {
	notes, err := model.GetRecentNotes(recentNotesLimit)
	if err != nil {
		return nil, err
	}
	return newNoteViews(ctx, notes), nil
}

// CreateNoteParams carries the metadata registered after a completed upload.
type CreateNoteParams struct {
	Title        string
	Description  string
	SubjectID    int64
	SubjectName  string
	MaterialName string
	FileID       string
	FileName     string
	FileSize     int64
	FileType     string
	Year         int
	Type         model.NoteType
	Tags         []string
}

// CreateNote registers an uploaded file in the catalog. The referenced subject
// must exist and the caller must be authenticated; the caller's profile is
// materialized on first upload. The note insert and the profile's upload
// counter are two separate writes with no transaction across them: a failure
// after the insert leaves the aggregate stale rather than rolling back the
// note (eventually-consistent counters).
func CreateNote(ctx context.Context, userID int64, params CreateNoteParams) (*NoteView, error) {
	if userID == 0 {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "not authenticated")
	}
	user, err := model.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	subject, err := model.GetSubjectByID(params.SubjectID)
	if err != nil {
		return nil, err
	}

	profile, err := model.GetOrCreateProfile(user)
	if err != nil {
		return nil, err
	}

	subjectName := params.SubjectName
	if subjectName == "" {
		subjectName = subject.Name
	}

	note := &model.Note{
		Title:            params.Title,
		Description:      params.Description,
		SubjectID:        subject.ID,
		SubjectName:      subjectName,
		MaterialName:     params.MaterialName,
		FileID:           params.FileID,
		FileName:         params.FileName,
		FileSize:         params.FileSize,
		FileType:         params.FileType,
		Year:             params.Year,
		Type:             params.Type,
		UploadedBy:       user.ID,
		UploaderNickname: profile.Nickname,
	}
	if err := note.SetTags(params.Tags); err != nil {
		return nil, err
	}
	if err := model.CreateNote(note); err != nil {
		return nil, err
	}

	if err := model.IncrementProfileUploads(user.ID); err != nil {
		common.SysError(fmt.Sprintf("note %d created but upload counter for user %d not bumped: %s", note.ID, user.ID, err.Error()))
	}

	return newNoteView(ctx, note), nil
}

// DownloadNote records one download of a note and returns it with a fresh
// URL. The note's counter always moves; the uploader's ledger aggregate is
// bumped only when the profile exists, otherwise it silently under-counts.
func DownloadNote(ctx context.Context, noteID int64) (*NoteView, error) {
	note, err := model.IncrementNoteDownloads(noteID)
	if err != nil {
		return nil, err
	}

	if err := model.IncrementProfileDownloads(note.UploadedBy); err != nil {
		// A missing profile means the ledger silently under-counts.
		if !apperrors.IsCode(err, apperrors.ErrProfileNotFound) {
			common.SysError(fmt.Sprintf("download counter for note %d moved but uploader ledger did not: %s", noteID, err.Error()))
		}
	}

	return newNoteView(ctx, note), nil
}

// GenerateUploadURL hands out a one-time upload handle from the blob store.
func GenerateUploadURL(ctx context.Context, userID int64) (*storage.UploadHandle, error) {
	if userID == 0 {
		return nil, apperrors.New(apperrors.ErrUnauthenticated, "not authenticated")
	}
	if blobStore == nil {
		return nil, apperrors.New(apperrors.ErrStorageUnavailable, "file storage is not configured")
	}
	return blobStore.GenerateUpload(ctx)
}

// ListWatchlist serves all notes the user has bookmarked. An anonymous caller
// gets an empty list, not an error, so logged-out browsing needs no special
// casing. Bookmarks whose note has since been deleted are dropped.
func ListWatchlist(ctx context.Context, userID int64) ([]*NoteView, error) {
	if userID == 0 {
		return []*NoteView{}, nil
	}
	entries, err := model.GetWatchlistForUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]*NoteView, 0, len(entries))
	for _, entry := range entries {
		note, err := model.GetNoteByID(entry.NoteID)
		if err != nil {
			// Dangling bookmark, the note is gone.
			continue
		}
		view := newNoteView(ctx, note)
		view.WatchlistID = entry.ID
		views = append(views, view)
	}
	return views, nil
}
