package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

type fakeNoteStore struct {
	notes  []*models.Note
	nextID int64
}

func (f *fakeNoteStore) Create(_ context.Context, note *models.Note) (int64, error) {
	f.nextID++
	note.ID = f.nextID
	f.notes = append(f.notes, note)
	return note.ID, nil
}

func (f *fakeNoteStore) GetByClassroomID(_ context.Context, classroomID int64) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range f.notes {
		if n.ClassroomID == classroomID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(_ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeStorage struct {
	keys      []string
	uploadErr error
}

func (f *fakeStorage) UploadBytes(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

type stubModeration struct {
	result  ModerationResult
	content string
}

func (s *stubModeration) CheckContent(_ context.Context, _, content string) ModerationResult {
	s.content = content
	return s.result
}

func uploadNoteRequest() *dto.UploadNoteRequest {
	return &dto.UploadNoteRequest{
		Title:       "Algebra Notes",
		Content:     "chapter 3 summary",
		ClassroomID: 5,
		Email:       "alice@test.com",
		FileName:    "algebra.pdf",
		FileType:    "application/pdf",
		FileSize:    1024,
		FileData:    []byte("%PDF-1.4 fake"),
	}
}

func newNoteService(store *fakeNoteStore, extractor *fakeExtractor, mod ModerationService, objectStorage *fakeStorage, filterEnabled bool) NoteService {
	return NewNoteService(store, extractor, mod, objectStorage, filterEnabled, zerolog.Nop())
}

func TestNoteServiceUploadNote(t *testing.T) {
	store := &fakeNoteStore{}
	objectStorage := &fakeStorage{}
	mod := &stubModeration{result: ModerationResult{Appropriate: true, Code: ModerationAppropriate}}
	svc := newNoteService(store, &fakeExtractor{text: "extracted text"}, mod, objectStorage, true)

	note, err := svc.UploadNote(context.Background(), uploadNoteRequest())
	require.NoError(t, err)

	assert.Equal(t, "Algebra Notes", note.Title)
	assert.Equal(t, int64(5), note.ClassroomID)
	require.Len(t, objectStorage.keys, 1)
	assert.True(t, strings.HasPrefix(objectStorage.keys[0], "note_"))
	assert.True(t, strings.HasSuffix(objectStorage.keys[0], "_algebra.pdf"))
	assert.Equal(t, "https://cdn.test/"+objectStorage.keys[0], note.FileURL)
	assert.Len(t, store.notes, 1)

	// the moderated content combines the description and the extracted text
	assert.Equal(t, "chapter 3 summary\n\nFile content:\nextracted text", mod.content)
}

func TestNoteServiceUploadNoteValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.UploadNoteRequest)
		wantMsg string
	}{
		{name: "missing title", mutate: func(r *dto.UploadNoteRequest) { r.Title = "" }, wantMsg: "Title, classroom ID, and email are required"},
		{name: "missing classroom", mutate: func(r *dto.UploadNoteRequest) { r.ClassroomID = 0 }, wantMsg: "Title, classroom ID, and email are required"},
		{name: "missing file", mutate: func(r *dto.UploadNoteRequest) { r.FileData = nil }, wantMsg: "No file uploaded"},
		{name: "oversized file", mutate: func(r *dto.UploadNoteRequest) { r.FileSize = 11 * 1024 * 1024 }, wantMsg: "File size too large. Maximum size is 10MB"},
		{name: "wrong type", mutate: func(r *dto.UploadNoteRequest) { r.FileType = "image/png" }, wantMsg: "Only PDF files are allowed for note uploads."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objectStorage := &fakeStorage{}
			svc := newNoteService(&fakeNoteStore{}, &fakeExtractor{}, &stubModeration{result: ModerationResult{Appropriate: true}}, objectStorage, true)

			req := uploadNoteRequest()
			tt.mutate(req)
			_, err := svc.UploadNote(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Empty(t, objectStorage.keys)
		})
	}
}

func TestNoteServiceUploadNoteRejected(t *testing.T) {
	store := &fakeNoteStore{}
	objectStorage := &fakeStorage{}
	mod := &stubModeration{result: ModerationResult{Appropriate: false, Code: ModerationInappropriate}}
	svc := newNoteService(store, &fakeExtractor{}, mod, objectStorage, true)

	_, err := svc.UploadNote(context.Background(), uploadNoteRequest())
	rejection, ok := apperrors.IsContentRejected(err)
	require.True(t, ok)
	assert.Equal(t, ModerationInappropriate, rejection.Reason)

	// rejected uploads never reach storage or the database
	assert.Empty(t, objectStorage.keys)
	assert.Empty(t, store.notes)
}

func TestNoteServiceUploadNoteFilterDisabled(t *testing.T) {
	mod := &stubModeration{result: ModerationResult{Appropriate: false, Code: ModerationInappropriate}}
	svc := newNoteService(&fakeNoteStore{}, &fakeExtractor{}, mod, &fakeStorage{}, false)

	note, err := svc.UploadNote(context.Background(), uploadNoteRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, note.FileURL)
	assert.Empty(t, mod.content)
}

func TestNoteServiceUploadNoteExtractionFailure(t *testing.T) {
	mod := &stubModeration{result: ModerationResult{Appropriate: true, Code: ModerationAppropriate}}
	svc := newNoteService(&fakeNoteStore{}, &fakeExtractor{err: errors.New("broken xref")}, mod, &fakeStorage{}, true)

	_, err := svc.UploadNote(context.Background(), uploadNoteRequest())
	require.NoError(t, err)
	assert.Equal(t, "chapter 3 summary\n\nFile content:\n", mod.content)
}

func TestNoteServiceGetNotes(t *testing.T) {
	store := &fakeNoteStore{}
	svc := newNoteService(store, &fakeExtractor{}, &stubModeration{}, &fakeStorage{}, false)

	_, err := svc.GetNotes(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, "No notes found", err.Error())

	store.notes = append(store.notes, &models.Note{ID: 1, ClassroomID: 5, Title: "Algebra Notes"})
	notes, err := svc.GetNotes(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNoteServiceGetNoteFile(t *testing.T) {
	store := &fakeNoteStore{notes: []*models.Note{
		{ID: 1, Title: "With file", FileURL: "https://cdn.test/note_1.pdf"},
		{ID: 2, Title: "Without file"},
	}}
	svc := newNoteService(store, &fakeExtractor{}, &stubModeration{}, &fakeStorage{}, false)

	note, err := svc.GetNoteFile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/note_1.pdf", note.FileURL)

	_, err = svc.GetNoteFile(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	_, err = svc.GetNoteFile(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}
