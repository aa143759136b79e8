package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/studybuddy/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Study   *apiHandler.StudyHandler
	Planner *apiHandler.PlannerHandler
	Tracker *apiHandler.TrackerHandler
	Tutor   *apiHandler.TutorHandler
	Quiz    *apiHandler.QuizHandler
	Exam    *apiHandler.ExamHandler
	Export  *apiHandler.ExportHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/sessions", authMiddleware(handlers.Study.ListSessions))
	r.POST("/api/v1/sessions", authMiddleware(handlers.Study.CreateSession))
	r.GET("/api/v1/sessions/{id}", authMiddleware(handlers.Study.GetSession))
	r.PATCH("/api/v1/sessions/{id}", authMiddleware(handlers.Study.UpdateSession))
	r.DELETE("/api/v1/sessions/{id}", authMiddleware(handlers.Study.DeleteSession))
	r.POST("/api/v1/sessions/{id}/complete", authMiddleware(handlers.Study.CompleteSession))

	r.GET("/api/v1/planner/tasks", authMiddleware(handlers.Planner.GetTasks))
	r.GET("/api/v1/planner/calendar", authMiddleware(handlers.Planner.GetCalendar))
	r.GET("/api/v1/planner/suggestions", authMiddleware(handlers.Planner.GetSuggestions))
	r.POST("/api/v1/planner/suggestions/accept", authMiddleware(handlers.Planner.AcceptSuggestion))
	r.GET("/api/v1/planner/stats", authMiddleware(handlers.Planner.GetStats))

	r.POST("/api/v1/tracker/start", authMiddleware(handlers.Tracker.Start))
	r.GET("/api/v1/tracker/{taskId}", authMiddleware(handlers.Tracker.Status))
	r.POST("/api/v1/tracker/{taskId}/pause", authMiddleware(handlers.Tracker.Pause))
	r.POST("/api/v1/tracker/{taskId}/stop", authMiddleware(handlers.Tracker.Stop))

	r.POST("/api/v1/tutor/chat", authMiddleware(handlers.Tutor.Chat))
	r.GET("/api/v1/tutor/history/{sessionId}", authMiddleware(handlers.Tutor.History))

	r.POST("/api/v1/quiz/generate", authMiddleware(handlers.Quiz.Generate))
	r.POST("/api/v1/quiz/complete", authMiddleware(handlers.Quiz.Complete))

	r.GET("/api/v1/exams", authMiddleware(handlers.Exam.ListExams))
	r.POST("/api/v1/exams", authMiddleware(handlers.Exam.CreateExam))
	r.DELETE("/api/v1/exams/{id}", authMiddleware(handlers.Exam.DeleteExam))

	r.GET("/api/v1/export", authMiddleware(handlers.Export.Export))

	return r
}
