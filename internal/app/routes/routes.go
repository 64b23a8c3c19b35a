package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/doruk/eduhub/internal/app/controllers"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	assignmentController *controllers.AssignmentController,
	quizController *controllers.QuizController,
	discussionController *controllers.DiscussionController,
	forumController *controllers.ForumController,
	eventController *controllers.EventController,
	resourceController *controllers.ResourceController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// User management
		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUserByID)
			users.PUT("/:id", userController.UpdateUser)
			users.PUT("/me/password", userController.ChangePassword)

			// Listing and deletion are restricted to administrators
			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				usersAdmin.GET("", userController.GetUsers)
				usersAdmin.DELETE("/:id", userController.DeleteUser)
			}
		}

		// Courses and their nested collections. Everything below a
		// course is guarded per request by the access policy, so the
		// routes themselves only require authentication.
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetCourses)
			courses.POST("", courseController.CreateCourse)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
			courses.GET("/:id/activity", courseController.GetActivityLog)

			courses.POST("/:id/teachers", courseController.AddTeacher)
			courses.DELETE("/:id/teachers/:userId", courseController.RemoveTeacher)
			courses.POST("/:id/students", courseController.AddStudent)
			courses.DELETE("/:id/students/:userId", courseController.RemoveStudent)

			courses.GET("/:id/enrollments", enrollmentController.ListByCourse)

			courses.GET("/:id/assignments", assignmentController.GetAssignments)
			courses.POST("/:id/assignments", assignmentController.CreateAssignment)
			courses.GET("/:id/announcements", assignmentController.GetAnnouncements)
			courses.POST("/:id/announcements", assignmentController.CreateAnnouncement)

			courses.GET("/:id/quizzes", quizController.GetQuizzes)
			courses.POST("/:id/quizzes", quizController.CreateQuiz)

			courses.GET("/:id/threads", discussionController.GetThreads)
			courses.POST("/:id/threads", discussionController.CreateThread)

			courses.GET("/:id/forums", forumController.GetForums)
			courses.POST("/:id/forums", forumController.CreateForum)

			courses.GET("/:id/events", eventController.GetEvents)
			courses.POST("/:id/events", eventController.CreateEvent)

			courses.GET("/:id/resources", resourceController.GetResources)
			courses.POST("/:id/resources", resourceController.UploadResource)
		}

		// Enrollment workflow
		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", enrollmentController.RequestEnrollment)
			enrollments.GET("/me", enrollmentController.ListOwn)
			enrollments.POST("/:id/approve", enrollmentController.ApproveEnrollment)
			enrollments.POST("/:id/reject", enrollmentController.RejectEnrollment)
		}

		// Assignments and submissions
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("/:id", assignmentController.GetAssignmentByID)
			assignments.PUT("/:id", assignmentController.UpdateAssignment)
			assignments.DELETE("/:id", assignmentController.DeleteAssignment)
			assignments.GET("/:id/submissions", assignmentController.GetSubmissions)
			assignments.POST("/:id/submissions", assignmentController.SubmitAssignment)
		}

		authenticated.DELETE("/announcements/:id", assignmentController.DeleteAnnouncement)

		// Quizzes, questions and submissions
		quizzes := authenticated.Group("/quizzes")
		{
			quizzes.GET("/:id", quizController.GetQuizByID)
			quizzes.PUT("/:id", quizController.UpdateQuiz)
			quizzes.DELETE("/:id", quizController.DeleteQuiz)
			quizzes.POST("/:id/questions", quizController.AddQuestion)
			quizzes.GET("/:id/submissions", quizController.GetQuizSubmissions)
			quizzes.POST("/:id/submissions", quizController.SubmitQuiz)
		}

		questions := authenticated.Group("/questions")
		{
			questions.PUT("/:id", quizController.UpdateQuestion)
			questions.DELETE("/:id", quizController.DeleteQuestion)
		}

		// Discussion threads, posts and replies
		threads := authenticated.Group("/threads")
		{
			threads.GET("/:id", discussionController.GetThreadByID)
			threads.PUT("/:id", discussionController.UpdateThread)
			threads.DELETE("/:id", discussionController.DeleteThread)
			threads.GET("/:id/posts", discussionController.GetPosts)
			threads.POST("/:id/posts", discussionController.CreatePost)
		}

		posts := authenticated.Group("/posts")
		{
			posts.PUT("/:id", discussionController.UpdatePost)
			posts.DELETE("/:id", discussionController.DeletePost)
			posts.GET("/:id/replies", discussionController.GetReplies)
			posts.POST("/:id/replies", discussionController.CreateReply)
		}

		replies := authenticated.Group("/replies")
		{
			replies.PUT("/:id", discussionController.UpdateReply)
			replies.DELETE("/:id", discussionController.DeleteReply)
		}

		// Forums and comments
		forums := authenticated.Group("/forums")
		{
			forums.GET("/:id", forumController.GetForumByID)
			forums.PUT("/:id", forumController.UpdateForum)
			forums.DELETE("/:id", forumController.DeleteForum)
			forums.POST("/:id/comments", forumController.CreateComment)
		}

		comments := authenticated.Group("/comments")
		{
			comments.PUT("/:id", forumController.UpdateComment)
			comments.DELETE("/:id", forumController.DeleteComment)
		}

		// Events and attendance
		events := authenticated.Group("/events")
		{
			events.GET("/:id", eventController.GetEventByID)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/attend", eventController.Attend)
			events.DELETE("/:id/attend", eventController.Unattend)
			events.GET("/:id/attendees", eventController.GetAttendees)
		}

		// File resources
		resources := authenticated.Group("/resources")
		{
			resources.GET("/:id", resourceController.GetResourceByID)
			resources.PUT("/:id", resourceController.UpdateResource)
			resources.DELETE("/:id", resourceController.DeleteResource)
		}

		// Profiles and the social graph
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", profileController.GetMyProfile)
			profiles.GET("/:id", profileController.GetProfile)
			profiles.PUT("/:id", profileController.UpdateProfile)
			profiles.GET("/:id/followers", profileController.GetFollowers)
			profiles.GET("/:id/following", profileController.GetFollowing)
			profiles.GET("/:id/connections", profileController.GetConnections)

			profiles.POST("/follow", profileController.Follow)
			profiles.DELETE("/follow/:id", profileController.Unfollow)

			profiles.GET("/friend-requests", profileController.ListFriendRequests)
			profiles.POST("/friend-requests", profileController.SendFriendRequest)
			profiles.POST("/friend-requests/:id/accept", profileController.AcceptFriendRequest)
			profiles.DELETE("/friend-requests/:id", profileController.DeclineFriendRequest)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
