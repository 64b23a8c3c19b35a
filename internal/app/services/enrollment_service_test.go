package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/db"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

type fakeAccounts struct {
	users map[int64]*models.User
}

func (f *fakeAccounts) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeMemberships struct {
	taught   map[int64][]int64
	enrolled map[int64][]int64
}

func (f *fakeMemberships) GetTaughtCourseIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.taught[userID], nil
}

func (f *fakeMemberships) GetEnrolledCourseIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.enrolled[userID], nil
}

type fakeEnrollmentStore struct {
	byID    map[int64]*models.EnrollmentRequest
	pending map[string]*models.EnrollmentRequest
	// rejected marks (student, course) pairs with a prior rejection.
	rejected map[string]bool
	// createErr makes Create fail; when duplicateOnCreate is also
	// set, the failing Create seeds the pending row a concurrent
	// winner would have written.
	createErr         error
	duplicateOnCreate *models.EnrollmentRequest
	nextID            int64
	creates           int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		byID:     make(map[int64]*models.EnrollmentRequest),
		pending:  make(map[string]*models.EnrollmentRequest),
		rejected: make(map[string]bool),
		nextID:   1,
	}
}

func pairKey(studentID, courseID int64) string {
	return fmt.Sprintf("%d/%d", studentID, courseID)
}

func (f *fakeEnrollmentStore) seedPending(id, studentID, courseID int64) *models.EnrollmentRequest {
	req := &models.EnrollmentRequest{
		ID:        id,
		StudentID: studentID,
		CourseID:  courseID,
		Status:    models.EnrollmentPending,
	}
	f.byID[id] = req
	f.pending[pairKey(studentID, courseID)] = req
	return req
}

func (f *fakeEnrollmentStore) Create(_ context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error) {
	f.creates++
	if f.createErr != nil {
		if f.duplicateOnCreate != nil {
			f.pending[pairKey(studentID, courseID)] = f.duplicateOnCreate
		}
		return nil, f.createErr
	}
	req := f.seedPending(f.nextID, studentID, courseID)
	f.nextID++
	return req, nil
}

func (f *fakeEnrollmentStore) GetPending(_ context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error) {
	if req, ok := f.pending[pairKey(studentID, courseID)]; ok {
		return req, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) HasRejected(_ context.Context, studentID, courseID int64) (bool, error) {
	return f.rejected[pairKey(studentID, courseID)], nil
}

func (f *fakeEnrollmentStore) GetByIDForUpdate(_ context.Context, _ pgx.Tx, id int64) (*models.EnrollmentRequest, error) {
	if req, ok := f.byID[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) UpdateStatusTx(_ context.Context, _ pgx.Tx, id int64, status models.EnrollmentStatus) error {
	req, ok := f.byID[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	req.Status = status
	delete(f.pending, pairKey(req.StudentID, req.CourseID))
	return nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64, status *models.EnrollmentStatus) ([]*models.EnrollmentRequest, error) {
	var out []*models.EnrollmentRequest
	for _, req := range f.byID {
		if req.CourseID != courseID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64) ([]*models.EnrollmentRequest, error) {
	var out []*models.EnrollmentRequest
	for _, req := range f.byID {
		if req.StudentID == studentID {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeCourseStore struct {
	courses  map[int64]*models.Course
	students map[string]bool
	added    []string
}

func newFakeCourseStore(courseIDs ...int64) *fakeCourseStore {
	f := &fakeCourseStore{
		courses:  make(map[int64]*models.Course),
		students: make(map[string]bool),
	}
	for _, id := range courseIDs {
		f.courses[id] = &models.Course{ID: id, Name: fmt.Sprintf("Course %d", id)}
	}
	return f
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) IsStudentOf(_ context.Context, courseID, userID int64) (bool, error) {
	return f.students[pairKey(userID, courseID)], nil
}

func (f *fakeCourseStore) AddStudentTx(_ context.Context, _ pgx.Tx, courseID, userID int64) error {
	key := pairKey(userID, courseID)
	f.students[key] = true
	f.added = append(f.added, key)
	return nil
}

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

const (
	testAdminID   = int64(1)
	testTeacherID = int64(2)
	testStudentID = int64(3)
	testCourseID  = int64(100)
)

func newEnrollmentServiceForTest(allowResubmission bool) (EnrollmentService, *fakeEnrollmentStore, *fakeCourseStore) {
	accounts := &fakeAccounts{users: map[int64]*models.User{
		testAdminID:   {ID: testAdminID, Role: models.RoleAdmin},
		testTeacherID: {ID: testTeacherID, Role: models.RoleTeacher},
		testStudentID: {ID: testStudentID, Role: models.RoleStudent},
	}}
	memberships := &fakeMemberships{
		taught:   map[int64][]int64{testTeacherID: {testCourseID}},
		enrolled: map[int64][]int64{},
	}
	authz := auth.NewAuthorizationService(accounts, memberships)

	enrollments := newFakeEnrollmentStore()
	courses := newFakeCourseStore(testCourseID)

	svc := NewEnrollmentService(enrollments, courses, authz, fakeTransactor{}, allowResubmission, zerolog.Nop())
	return svc, enrollments, courses
}

func TestRequestEnrollmentCreatesPending(t *testing.T) {
	svc, store, _ := newEnrollmentServiceForTest(true)

	resp, created, err := svc.RequestEnrollment(context.Background(), testStudentID, testCourseID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, string(models.EnrollmentPending), resp.Status)
	assert.Equal(t, testStudentID, resp.StudentID)
	assert.Equal(t, testCourseID, resp.CourseID)
	assert.Equal(t, 1, store.creates)
}

func TestRequestEnrollmentReturnsExistingOpenRequest(t *testing.T) {
	svc, store, _ := newEnrollmentServiceForTest(true)
	existing := store.seedPending(7, testStudentID, testCourseID)

	resp, created, err := svc.RequestEnrollment(context.Background(), testStudentID, testCourseID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, resp.ID)
	assert.Zero(t, store.creates)
}

func TestRequestEnrollmentRequiresStudentRole(t *testing.T) {
	svc, store, _ := newEnrollmentServiceForTest(true)

	for _, actorID := range []int64{testAdminID, testTeacherID} {
		_, _, err := svc.RequestEnrollment(context.Background(), actorID, testCourseID)
		assert.ErrorIs(t, err, apperrors.ErrRoleNotAllowed)
	}
	assert.Zero(t, store.creates)
}

func TestRequestEnrollmentUnknownCourse(t *testing.T) {
	svc, _, _ := newEnrollmentServiceForTest(true)

	_, _, err := svc.RequestEnrollment(context.Background(), testStudentID, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRequestEnrollmentConcurrentInsertLoses(t *testing.T) {
	svc, store, _ := newEnrollmentServiceForTest(true)

	winner := &models.EnrollmentRequest{
		ID:        42,
		StudentID: testStudentID,
		CourseID:  testCourseID,
		Status:    models.EnrollmentPending,
	}
	store.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_enrollment_requests_pending"}
	store.duplicateOnCreate = winner

	resp, created, err := svc.RequestEnrollment(context.Background(), testStudentID, testCourseID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, resp.ID)
}

func TestRequestEnrollmentBlockedAfterRejection(t *testing.T) {
	svc, store, _ := newEnrollmentServiceForTest(false)
	store.rejected[pairKey(testStudentID, testCourseID)] = true

	_, _, err := svc.RequestEnrollment(context.Background(), testStudentID, testCourseID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentResubmission)
}

func TestApproveEnrollmentGrantsMembership(t *testing.T) {
	svc, store, courses := newEnrollmentServiceForTest(true)
	store.seedPending(10, testStudentID, testCourseID)

	resp, err := svc.ApproveEnrollment(context.Background(), testAdminID, 10)
	require.NoError(t, err)
	assert.Equal(t, string(models.EnrollmentApproved), resp.Status)
	assert.Equal(t, models.EnrollmentApproved, store.byID[10].Status)
	assert.Equal(t, []string{pairKey(testStudentID, testCourseID)}, courses.added)
}

func TestApproveEnrollmentRequiresAdmin(t *testing.T) {
	svc, store, courses := newEnrollmentServiceForTest(true)
	store.seedPending(10, testStudentID, testCourseID)

	for _, actorID := range []int64{testTeacherID, testStudentID} {
		_, err := svc.ApproveEnrollment(context.Background(), actorID, 10)
		assert.ErrorIs(t, err, apperrors.ErrRoleNotAllowed)
	}
	assert.Equal(t, models.EnrollmentPending, store.byID[10].Status)
	assert.Empty(t, courses.added)
}

func TestApproveEnrollmentFinalizedRequest(t *testing.T) {
	svc, store, courses := newEnrollmentServiceForTest(true)
	req := store.seedPending(10, testStudentID, testCourseID)

	for _, status := range []models.EnrollmentStatus{models.EnrollmentApproved, models.EnrollmentRejected} {
		req.Status = status
		_, err := svc.ApproveEnrollment(context.Background(), testAdminID, 10)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentFinalized)
	}
	assert.Empty(t, courses.added)
}

func TestRejectEnrollment(t *testing.T) {
	svc, store, courses := newEnrollmentServiceForTest(true)
	store.seedPending(10, testStudentID, testCourseID)

	resp, err := svc.RejectEnrollment(context.Background(), testAdminID, 10)
	require.NoError(t, err)
	assert.Equal(t, string(models.EnrollmentRejected), resp.Status)
	assert.Empty(t, courses.added)

	_, err = svc.ApproveEnrollment(context.Background(), testAdminID, 10)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentFinalized)
}
