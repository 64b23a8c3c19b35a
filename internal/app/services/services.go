package services

// Services defined in this package:
// - AuthService: Handles registration, login and token lifecycle
// - UserService: Handles account administration
// - CourseService: Handles the course registry and memberships
// - EnrollmentService: Handles the enrollment request workflow
// - AssignmentService: Handles assignments, submissions and announcements
// - QuizService: Handles quizzes, questions and graded submissions
// - DiscussionService: Handles discussion threads, posts and replies
// - ForumService: Handles forum posts and comments
// - EventService: Handles course events and attendance
// - ResourceService: Handles course file resources
// - ProfileService: Handles social profiles, follows and friendships
