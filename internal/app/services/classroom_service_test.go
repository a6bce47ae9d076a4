package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

type fakeClassroomStore struct {
	classrooms []*models.PrivateClassroom
	nextID     int64
}

func (f *fakeClassroomStore) Create(_ context.Context, classroom *models.PrivateClassroom) (int64, error) {
	f.nextID++
	classroom.ID = f.nextID
	f.classrooms = append(f.classrooms, classroom)
	return classroom.ID, nil
}

func (f *fakeClassroomStore) NameExists(_ context.Context, name string) (bool, error) {
	for _, c := range f.classrooms {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClassroomStore) GetByClass(_ context.Context, classID int64, ownedByUserID *int64, excludeUserID *int64) ([]*models.PrivateClassroom, error) {
	var out []*models.PrivateClassroom
	for _, c := range f.classrooms {
		if c.ClassroomID != classID {
			continue
		}
		if ownedByUserID != nil && c.UserID != *ownedByUserID {
			continue
		}
		if excludeUserID != nil && c.UserID == *excludeUserID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func seedClassrooms() *fakeClassroomStore {
	return &fakeClassroomStore{classrooms: []*models.PrivateClassroom{
		{ID: 1, UserID: 1, ClassroomID: 10, Name: "Math Group"},
		{ID: 2, UserID: 2, ClassroomID: 10, Name: "Physics Group"},
		{ID: 3, UserID: 1, ClassroomID: 20, Name: "History Group"},
	}, nextID: 3}
}

func TestClassroomServiceCreatePrivateClassroom(t *testing.T) {
	store := seedClassrooms()
	svc := NewClassroomService(store, zerolog.Nop())

	classroom, err := svc.CreatePrivateClassroom(context.Background(), &dto.CreatePrivateClassroomRequest{
		UserID:      3,
		UserEmail:   "carol@test.com",
		ClassroomID: 10,
		Name:        "Chemistry Group",
		Password:    "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), classroom.ID)

	_, err = svc.CreatePrivateClassroom(context.Background(), &dto.CreatePrivateClassroomRequest{
		UserID:      3,
		ClassroomID: 10,
		Name:        "Math Group",
	})
	assert.ErrorIs(t, err, apperrors.ErrClassroomAlreadyExists)
}

func TestClassroomServiceGetPrivateClassrooms(t *testing.T) {
	svc := NewClassroomService(seedClassrooms(), zerolog.Nop())

	// others' classrooms in the class, never the caller's own
	classrooms, err := svc.GetPrivateClassrooms(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, classrooms, 1)
	assert.Equal(t, "Physics Group", classrooms[0].Name)

	_, err = svc.GetPrivateClassrooms(context.Background(), 20, 1)
	require.Error(t, err)
	assert.Equal(t, "No private classrooms found for the given classroom ID and user ID", err.Error())
}

func TestClassroomServiceGetUserPrivateClassrooms(t *testing.T) {
	svc := NewClassroomService(seedClassrooms(), zerolog.Nop())

	classrooms, err := svc.GetUserPrivateClassrooms(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, classrooms, 1)
	assert.Equal(t, "Math Group", classrooms[0].Name)

	_, err = svc.GetUserPrivateClassrooms(context.Background(), 10, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
