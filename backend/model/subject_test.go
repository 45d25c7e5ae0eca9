package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeDefaultSubjects(t *testing.T) {
	setupTestDB(t)

	err := InitializeDefaultSubjects()
	assert.NoError(t, err)

	subjects, err := GetAllSubjects()
	assert.NoError(t, err)
	assert.Len(t, subjects, 8)

	// A second run must not seed again.
	err = InitializeDefaultSubjects()
	assert.NoError(t, err)

	subjects, err = GetAllSubjects()
	assert.NoError(t, err)
	assert.Len(t, subjects, 8)
}

func TestInitializeDefaultSubjectsSkipsNonEmptyRegistry(t *testing.T) {
	setupTestDB(t)

	mustCreateSubject(t, "Custom", "#000000")

	err := InitializeDefaultSubjects()
	assert.NoError(t, err)

	subjects, err := GetAllSubjects()
	assert.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.Equal(t, "Custom", subjects[0].Name)
}

func TestCreateSubjectAllowsDuplicateNames(t *testing.T) {
	setupTestDB(t)

	mustCreateSubject(t, "Physics", "#EF4444")
	mustCreateSubject(t, "Physics", "#EF4444")

	subjects, err := GetAllSubjects()
	assert.NoError(t, err)
	assert.Len(t, subjects, 2)
}

func TestGetSubjectByIDNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetSubjectByID(12345)
	assert.Error(t, err)
}
