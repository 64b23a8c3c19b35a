package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	CourseRepository      *CourseRepository
	EnrollmentRepository  *EnrollmentRepository
	ActivityLogRepository *ActivityLogRepository
	AssignmentRepository  *AssignmentRepository
	QuizRepository        *QuizRepository
	DiscussionRepository  *DiscussionRepository
	ForumRepository       *ForumRepository
	EventRepository       *EventRepository
	ResourceRepository    *ResourceRepository
	ProfileRepository     *ProfileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		CourseRepository:      NewCourseRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
		ActivityLogRepository: NewActivityLogRepository(db),
		AssignmentRepository:  NewAssignmentRepository(db),
		QuizRepository:        NewQuizRepository(db),
		DiscussionRepository:  NewDiscussionRepository(db),
		ForumRepository:       NewForumRepository(db),
		EventRepository:       NewEventRepository(db),
		ResourceRepository:    NewResourceRepository(db),
		ProfileRepository:     NewProfileRepository(db),
	}
}
