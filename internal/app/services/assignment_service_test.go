package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

type fakeAssignmentStore struct {
	assignments []*models.Assignment
	submissions []*models.AssignmentSubmission
	nextID      int64
}

func (f *fakeAssignmentStore) Create(_ context.Context, assignment *models.Assignment) (int64, error) {
	f.nextID++
	assignment.ID = f.nextID
	f.assignments = append(f.assignments, assignment)
	return assignment.ID, nil
}

func (f *fakeAssignmentStore) GetByClassroomID(_ context.Context, classroomID int64) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range f.assignments {
		if a.PrivateClassroomID == classroomID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) CreateSubmission(_ context.Context, submission *models.AssignmentSubmission) (int64, error) {
	f.nextID++
	submission.ID = f.nextID
	f.submissions = append(f.submissions, submission)
	return submission.ID, nil
}

func (f *fakeAssignmentStore) GetSubmissionsByAssignmentID(_ context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error) {
	var out []*models.AssignmentSubmission
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) DeleteSubmission(_ context.Context, submissionID int64) error {
	for i, s := range f.submissions {
		if s.ID == submissionID {
			f.submissions = append(f.submissions[:i], f.submissions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func TestAssignmentServiceCreateAssignment(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewAssignmentService(store, zerolog.Nop())

	assignment, err := svc.CreateAssignment(context.Background(), &dto.CreateAssignmentRequest{
		PrivateClassroomID: 5,
		Email:              "teacher@test.com",
		Title:              "Essay",
		Desc:               "Write 500 words",
		DueDate:            "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), assignment.DueDate)

	_, err = svc.CreateAssignment(context.Background(), &dto.CreateAssignmentRequest{
		PrivateClassroomID: 5,
		DueDate:            "whenever",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid due date", err.Error())
}

func TestAssignmentServiceGetAssignmentsEmpty(t *testing.T) {
	svc := NewAssignmentService(&fakeAssignmentStore{}, zerolog.Nop())

	_, err := svc.GetAssignments(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, "No assignments found for the given Private Classroom ID", err.Error())
}

func TestAssignmentServiceSubmissions(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc := NewAssignmentService(store, zerolog.Nop())

	err := svc.SubmitAssignment(context.Background(), &dto.SubmitAssignmentRequest{
		AssignmentID: 3,
		Email:        "student@test.com",
		Base64String: "ZmlsZQ==",
		FileType:     "application/pdf",
	})
	require.NoError(t, err)

	submissions, err := svc.GetSubmissions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, submissions, 1)

	err = svc.DeleteSubmission(context.Background(), submissions[0].ID)
	require.NoError(t, err)

	_, err = svc.GetSubmissions(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, "No submissions found for this assignment", err.Error())
}

func TestAssignmentServiceDeleteSubmissionNotFound(t *testing.T) {
	svc := NewAssignmentService(&fakeAssignmentStore{}, zerolog.Nop())

	err := svc.DeleteSubmission(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "Assignment submission not found", err.Error())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2025-06-15", want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{input: "2025-06-15T10:30:00Z", want: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
		{input: "2025-06-15T10:30:00.000Z", want: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(tt.want), tt.input)
	}

	_, err := parseDate("15/06/2025")
	assert.Error(t, err)
}
