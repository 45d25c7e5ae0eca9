package model

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	apperrors "learnnest/backend/common/errors"

	"github.com/burugo/thing"
)

// NoteType categorizes the uploaded material.
type NoteType string

const (
	NoteTypeNotes          NoteType = "notes"
	NoteTypePreviousPapers NoteType = "previous_papers"
	NoteTypeQuestionPapers NoteType = "question_papers"
)

// IsValid reports whether t is one of the known material types.
func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeNotes, NoteTypePreviousPapers, NoteTypeQuestionPapers:
		return true
	}
	return false
}

// Note is a catalog entry for one uploaded file. SubjectName and
// UploaderNickname are denormalized snapshots taken at write time so lists
// render without joins; they may drift from the live Subject/UserProfile and
// that is accepted. FileID never changes once set.
type Note struct {
	thing.BaseModel
	Title            string   `db:"title" json:"title"`
	Description      string   `db:"description" json:"description,omitempty"`
	SubjectID        int64    `db:"subject_id,index" json:"subject_id"`
	SubjectName      string   `db:"subject_name" json:"subject_name"`
	MaterialName     string   `db:"material_name" json:"material_name"`
	FileID           string   `db:"file_id" json:"file_id"`
	FileName         string   `db:"file_name" json:"file_name"`
	FileSize         int64    `db:"file_size" json:"file_size"`
	FileType         string   `db:"file_type" json:"file_type"`
	Year             int      `db:"year,index" json:"year"`
	Type             NoteType `db:"type,index" json:"type"`
	UploadedBy       int64    `db:"uploaded_by,index" json:"uploaded_by"`
	UploaderNickname string   `db:"uploader_nickname" json:"uploader_nickname"`
	Downloads        int64    `db:"downloads" json:"downloads"`
	Tags             string   `db:"tags" json:"-"` // JSON array of strings
}

func (n *Note) TableName() string {
	return "notes"
}

// SetTags stores the tag list as a JSON column.
func (n *Note) SetTags(tags []string) error {
	if len(tags) == 0 {
		n.Tags = ""
		return nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	n.Tags = string(data)
	return nil
}

// GetTags returns the decoded tag list, preserving order.
func (n *Note) GetTags() ([]string, error) {
	if n.Tags == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(n.Tags), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

var NoteDB *thing.Thing[*Note]

// NoteInit initializes NoteDB during InitDB.
func NoteInit() error {
	var err error
	NoteDB, err = thing.Use[*Note]()
	if err != nil {
		return err
	}
	return nil
}

// NoteFilter holds the optional exact-match filters of the list operation.
// Absent fields impose no constraint.
type NoteFilter struct {
	SubjectID *int64
	Type      *NoteType
	Year      *int
	Search    string
}

// ListNotes retrieves the catalog view. A non-blank search term fetches by
// title keyword match (ordering is whatever the store returns); otherwise all
// notes are fetched newest first. The subject/type/year filters are then
// applied in sequence over the fetched list.
func ListNotes(filter NoteFilter) ([]*Note, error) {
	var notes []*Note
	var err error

	searchTerm := strings.TrimSpace(filter.Search)
	if searchTerm != "" {
		notes, err = NoteDB.Where("title LIKE ?", "%"+searchTerm+"%").All()
	} else {
		notes, err = NoteDB.Order("created_at DESC, id DESC").All()
	}
	if err != nil {
		return nil, err
	}

	if filter.SubjectID != nil {
		notes = filterNotes(notes, func(n *Note) bool { return n.SubjectID == *filter.SubjectID })
	}
	if filter.Type != nil {
		notes = filterNotes(notes, func(n *Note) bool { return n.Type == *filter.Type })
	}
	if filter.Year != nil {
		notes = filterNotes(notes, func(n *Note) bool { return n.Year == *filter.Year })
	}
	return notes, nil
}

func filterNotes(notes []*Note, keep func(*Note) bool) []*Note {
	filtered := notes[:0]
	for _, n := range notes {
		if keep(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

func GetNoteByID(id int64) (*Note, error) {
	note, err := NoteDB.ByID(id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNoteNotFound, "note not found")
	}
	return note, nil
}

// GetRecentNotes returns the n most recently created notes, newest first.
func GetRecentNotes(n int) ([]*Note, error) {
	return NoteDB.Order("created_at DESC, id DESC").Fetch(0, n)
}

// GetPopularNotes returns the top downloaded notes among the recencyWindow
// most recently created ones. This is a "trending among recent" view, not an
// all-time leaderboard: an old note never enters the result no matter how many
// downloads it has. Ties keep their recency order.
func GetPopularNotes(limit, recencyWindow int) ([]*Note, error) {
	notes, err := NoteDB.Order("created_at DESC, id DESC").Fetch(0, recencyWindow)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Downloads > notes[j].Downloads
	})
	if len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

// CreateNote inserts a new catalog entry. The downloads counter always starts
// at zero.
func CreateNote(note *Note) error {
	note.Downloads = 0
	return NoteDB.Save(note)
}

// noteCounterMu serializes download-counter updates. Save writes the column
// as an absolute value, so an unserialized read-modify-save loses concurrent
// increments.
var noteCounterMu sync.Mutex

// IncrementNoteDownloads bumps the note's counter by exactly one and returns
// the updated row. The row is re-read inside the critical section so every
// caller builds on the latest count.
func IncrementNoteDownloads(noteID int64) (*Note, error) {
	noteCounterMu.Lock()
	defer noteCounterMu.Unlock()

	note, err := NoteDB.ByID(noteID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNoteNotFound, "note not found")
	}
	note.Downloads++
	if err := NoteDB.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}
