package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// fakeAssignmentStore covers the submission slice of assignmentStore;
// the embedded interface panics on anything a test does not exercise.
type fakeAssignmentStore struct {
	assignmentStore
	assignments map[int64]*models.Assignment
	submissions []*models.AssignmentSubmission
	createErr   error
}

func (f *fakeAssignmentStore) GetAssignmentByID(_ context.Context, id int64) (*models.Assignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (f *fakeAssignmentStore) CreateSubmission(_ context.Context, s *models.AssignmentSubmission) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	s.ID = int64(len(f.submissions) + 1)
	f.submissions = append(f.submissions, s)
	return s.ID, nil
}

type recordingStorage struct {
	savedSubPath string
	savedName    string
	deleted      []string
}

func (r *recordingStorage) SaveFile(fh *multipart.FileHeader) (string, error) {
	return r.SaveFileWithPath(fh, "")
}

func (r *recordingStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	r.savedSubPath = subPath
	r.savedName = fh.Filename
	return "uploads/" + subPath + "/stored.pdf", nil
}

func (r *recordingStorage) DeleteFile(filePath string) error {
	r.deleted = append(r.deleted, filePath)
	return nil
}

func (r *recordingStorage) GetFullPath(fileURL string) string {
	return fileURL
}

func newAssignmentServiceForTest(enrolled bool) (AssignmentService, *fakeAssignmentStore, *recordingStorage) {
	accounts := &fakeAccounts{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, Role: models.RoleStudent},
	}}
	enrolledCourses := map[int64][]int64{}
	if enrolled {
		enrolledCourses[testStudentID] = []int64{testCourseID}
	}
	authz := auth.NewAuthorizationService(accounts, &fakeMemberships{
		taught:   map[int64][]int64{},
		enrolled: enrolledCourses,
	})

	store := &fakeAssignmentStore{assignments: map[int64]*models.Assignment{
		5: {ID: 5, CourseID: testCourseID, Title: "Essay"},
	}}
	storage := &recordingStorage{}
	courses := newFakeCourseStore(testCourseID)

	svc := NewAssignmentService(store, courses, authz, storage, zerolog.Nop())
	return svc, store, storage
}

func TestSubmitAssignmentStoresUpload(t *testing.T) {
	svc, store, storage := newAssignmentServiceForTest(true)
	file := &multipart.FileHeader{Filename: "essay.pdf"}

	resp, err := svc.SubmitAssignment(context.Background(), testStudentID, 5, file)
	require.NoError(t, err)

	assert.Equal(t, "assignment_submissions", storage.savedSubPath)
	assert.Equal(t, "essay.pdf", storage.savedName)
	require.NotNil(t, resp.FileURL)
	assert.Equal(t, "uploads/assignment_submissions/stored.pdf", *resp.FileURL)

	require.Len(t, store.submissions, 1)
	assert.Equal(t, testStudentID, store.submissions[0].StudentID)
	assert.Equal(t, int64(5), store.submissions[0].AssignmentID)
}

func TestSubmitAssignmentRequiresEnrollment(t *testing.T) {
	svc, store, storage := newAssignmentServiceForTest(false)
	file := &multipart.FileHeader{Filename: "essay.pdf"}

	_, err := svc.SubmitAssignment(context.Background(), testStudentID, 5, file)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.submissions)
	assert.Empty(t, storage.savedSubPath)
}

func TestSubmitAssignmentMissingFile(t *testing.T) {
	svc, _, storage := newAssignmentServiceForTest(true)

	_, err := svc.SubmitAssignment(context.Background(), testStudentID, 5, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, storage.savedSubPath)
}

func TestSubmitAssignmentRemovesFileWhenRecordFails(t *testing.T) {
	svc, store, storage := newAssignmentServiceForTest(true)
	store.createErr = apperrors.ErrAlreadySubmitted
	file := &multipart.FileHeader{Filename: "essay.pdf"}

	_, err := svc.SubmitAssignment(context.Background(), testStudentID, 5, file)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
	assert.Equal(t, []string{"uploads/assignment_submissions/stored.pdf"}, storage.deleted)
}
