package model

import (
	apperrors "learnnest/backend/common/errors"

	"github.com/burugo/thing"
)

// Subject is a study category. Subjects are seeded once and effectively
// immutable afterwards; there is no deletion path.
type Subject struct {
	thing.BaseModel
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Color       string `db:"color" json:"color"` // UI hint, e.g. "#3B82F6"
}

func (s *Subject) TableName() string {
	return "subjects"
}

var SubjectDB *thing.Thing[*Subject]

// SubjectInit initializes SubjectDB during InitDB.
func SubjectInit() error {
	var err error
	SubjectDB, err = thing.Use[*Subject]()
	if err != nil {
		return err
	}
	return nil
}

// GetAllSubjects returns every subject, insertion order.
func GetAllSubjects() ([]*Subject, error) {
	return SubjectDB.Query(thing.QueryParams{}).All()
}

func GetSubjectByID(id int64) (*Subject, error) {
	subject, err := SubjectDB.ByID(id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSubjectNotFound, "subject not found")
	}
	return subject, nil
}

// CreateSubject inserts unconditionally. Name uniqueness is the caller's
// responsibility.
func CreateSubject(subject *Subject) error {
	return SubjectDB.Save(subject)
}

var defaultSubjects = []Subject{
	{Name: "Mathematics", Description: "Math notes and papers", Color: "#3B82F6"},
	{Name: "Physics", Description: "Physics study materials", Color: "#EF4444"},
	{Name: "Chemistry", Description: "Chemistry notes and labs", Color: "#10B981"},
	{Name: "Computer Science", Description: "Programming and CS concepts", Color: "#8B5CF6"},
	{Name: "English", Description: "Literature and language", Color: "#F59E0B"},
	{Name: "Biology", Description: "Life sciences materials", Color: "#06B6D4"},
	{Name: "History", Description: "Historical documents and notes", Color: "#84CC16"},
	{Name: "Economics", Description: "Economic theories and cases", Color: "#F97316"},
}

// InitializeDefaultSubjects seeds the registry on first run. It is a no-op as
// soon as any subject exists, which makes repeated calls safe. Two concurrent
// first-run callers can both pass the emptiness check and insert duplicate
// seed rows; that one-time bootstrap blemish is tolerated, not guarded.
func InitializeDefaultSubjects() error {
	existing, err := SubjectDB.Query(thing.QueryParams{}).Fetch(0, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range defaultSubjects {
		subject := defaultSubjects[i]
		if err := SubjectDB.Save(&subject); err != nil {
			return err
		}
	}
	return nil
}
