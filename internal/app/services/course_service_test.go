package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/doruk/eduhub/internal/app/models"
)

type fakeUserDirectory struct {
	fakeAccounts
	emails []string
}

func (f *fakeUserDirectory) GetAllEmails(_ context.Context) ([]string, error) {
	return f.emails, nil
}

type recordingEmailService struct {
	welcomeSent      []string
	courseRecipients []string
	courseName       string
	teacherName      string
	sendErr          error
}

func (r *recordingEmailService) SendWelcomeEmail(toEmail, _ string) error {
	r.welcomeSent = append(r.welcomeSent, toEmail)
	return r.sendErr
}

func (r *recordingEmailService) SendCourseCreatedEmail(toEmails []string, courseName, teacherName string) error {
	r.courseRecipients = toEmails
	r.courseName = courseName
	r.teacherName = teacherName
	return r.sendErr
}

func TestNotifyCourseCreatedSendsBeforeReturning(t *testing.T) {
	directory := &fakeUserDirectory{
		fakeAccounts: fakeAccounts{users: map[int64]*models.User{
			testTeacherID: {ID: testTeacherID, Role: models.RoleTeacher, FirstName: "Ada", LastName: "Day"},
		}},
		emails: []string{"a@example.com", "b@example.com"},
	}
	recorder := &recordingEmailService{}
	svc := &courseServiceImpl{
		userRepo:     directory,
		emailService: recorder,
		logger:       zerolog.Nop(),
	}

	course := &models.Course{ID: testCourseID, Name: "Algebra"}
	svc.notifyCourseCreated(context.Background(), course, testTeacherID)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, recorder.courseRecipients)
	assert.Equal(t, "Algebra", recorder.courseName)
	assert.Equal(t, "Ada Day", recorder.teacherName)
}

func TestNotifyCourseCreatedSwallowsSendFailure(t *testing.T) {
	directory := &fakeUserDirectory{
		fakeAccounts: fakeAccounts{users: map[int64]*models.User{}},
		emails:       []string{"a@example.com"},
	}
	recorder := &recordingEmailService{sendErr: errors.New("smtp down")}
	svc := &courseServiceImpl{
		userRepo:     directory,
		emailService: recorder,
		logger:       zerolog.Nop(),
	}

	course := &models.Course{ID: testCourseID, Name: "Algebra"}
	svc.notifyCourseCreated(context.Background(), course, testTeacherID)

	assert.Equal(t, []string{"a@example.com"}, recorder.courseRecipients)
}

func TestNotifyCourseCreatedNoRecipients(t *testing.T) {
	directory := &fakeUserDirectory{
		fakeAccounts: fakeAccounts{users: map[int64]*models.User{}},
	}
	recorder := &recordingEmailService{}
	svc := &courseServiceImpl{
		userRepo:     directory,
		emailService: recorder,
		logger:       zerolog.Nop(),
	}

	course := &models.Course{ID: testCourseID, Name: "Algebra"}
	svc.notifyCourseCreated(context.Background(), course, testTeacherID)

	assert.Empty(t, recorder.courseRecipients)
}
