package model

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
	"github.com/stretchr/testify/require"
)

// testDBSeq makes each test's in-memory database name unique. The shared-cache
// URI form is required because the adapter pools connections: a plain
// ":memory:" DSN gives every pooled connection its own empty database.
var testDBSeq int64

func testDBDSN() string {
	return fmt.Sprintf("file:model_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
}

// setupTestDB points the ORM at a fresh in-memory database and initializes
// every model handle.
func setupTestDB(t *testing.T) {
	t.Helper()
	dbAdapter, err := sqlite.NewSQLiteAdapter(testDBDSN())
	require.NoError(t, err)
	thing.Configure(dbAdapter, nil)

	err = thing.AutoMigrate(&User{}, &Subject{}, &Note{}, &UserProfile{}, &WatchlistEntry{})
	require.NoError(t, err)

	require.NoError(t, UserInit())
	require.NoError(t, SubjectInit())
	require.NoError(t, NoteInit())
	require.NoError(t, UserProfileInit())
	require.NoError(t, WatchlistInit())
}

func mustCreateUser(t *testing.T, username, displayName, email string) *User {
	t.Helper()
	user := &User{
		Username:    username,
		Password:    "secret123",
		DisplayName: displayName,
		Email:       email,
		Role:        1,
		Status:      1,
	}
	require.NoError(t, user.Insert())
	return user
}

func mustCreateSubject(t *testing.T, name, color string) *Subject {
	t.Helper()
	subject := &Subject{Name: name, Color: color}
	require.NoError(t, CreateSubject(subject))
	return subject
}

func mustCreateNote(t *testing.T, uploader *User, subject *Subject, title string, noteType NoteType, year int) *Note {
	t.Helper()
	note := &Note{
		Title:            title,
		SubjectID:        subject.ID,
		SubjectName:      subject.Name,
		MaterialName:     title,
		FileID:           "file-" + title,
		FileName:         title + ".pdf",
		FileSize:         1024,
		FileType:         "application/pdf",
		Year:             year,
		Type:             noteType,
		UploadedBy:       uploader.ID,
		UploaderNickname: uploader.DisplayName,
	}
	require.NoError(t, CreateNote(note))
	return note
}
