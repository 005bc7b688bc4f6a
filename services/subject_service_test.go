package services

import (
	"context"
	"testing"

	"github.com/anjiri1684/tutor_marketplace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListSubjects(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := CreateSubject(ctx, "Physics")
	require.NoError(t, err)
	_, err = CreateSubject(ctx, "Chemistry")
	require.NoError(t, err)

	_, err = CreateSubject(ctx, "Physics")
	assert.ErrorIs(t, err, ErrSubjectExists)

	subjects, err := ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Chemistry", subjects[0].Name)
	assert.Equal(t, "Physics", subjects[1].Name)

	found, err := GetSubject(ctx, subjects[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Physics", found.Name)

	_, err = GetSubject(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestTutorSubjects(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	tutor := newProfile(t, models.RoleTutor, "Ada Lovelace")

	subject, err := CreateSubject(ctx, "Mathematics")
	require.NoError(t, err)

	_, err = AddTutorSubject(ctx, tutor.ID, subject.ID)
	require.NoError(t, err)
	_, err = AddTutorSubject(ctx, tutor.ID, subject.ID)
	assert.ErrorIs(t, err, ErrAlreadyTeaching)
	_, err = AddTutorSubject(ctx, tutor.ID, uuid.New())
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	taught, err := ListTutorSubjects(ctx, tutor.ID)
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, "Mathematics", taught[0].Subject.Name)

	require.NoError(t, RemoveTutorSubject(ctx, tutor.ID, subject.ID))
	assert.ErrorIs(t, RemoveTutorSubject(ctx, tutor.ID, subject.ID), ErrSubjectNotFound)

	taught, err = ListTutorSubjects(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Empty(t, taught)
}

func TestInitSubjectCache_EmptyAddrDisablesCache(t *testing.T) {
	InitSubjectCache("", "", 0, 0)
	assert.Nil(t, subjectCache)
}
