package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyfeed/content-service/internal/services"
	"github.com/studyfeed/content-service/internal/utils"
)

type HandlerManager struct {
	postHandler     *PostHandler
	questionHandler *QuestionHandler
	quizHandler     *QuizHandler
	adminToken      string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	adminToken string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		postHandler:     NewPostHandler(serviceManager.Posts(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Questions(), serviceManager.Export(), logger),
		quizHandler:     NewQuizHandler(serviceManager.Quizzes(), logger),
		adminToken:      adminToken,
	}
}

// SetupRoutes sets up all API routes. Reads are public; mutations and
// the export endpoint require the admin token.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", hm.postHandler.ListPosts)
			posts.GET("/:id", hm.postHandler.GetPost)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/subject/:subject", hm.questionHandler.ListQuestionsBySubject)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		}

		admin := api.Group("")
		admin.Use(AdminMiddleware(hm.adminToken))
		{
			admin.POST("/posts", hm.postHandler.CreatePost)
			admin.PUT("/posts/:id", hm.postHandler.UpdatePost)
			admin.DELETE("/posts/:id", hm.postHandler.DeletePost)

			admin.POST("/questions", hm.questionHandler.CreateQuestion)
			admin.PUT("/questions/:id", hm.questionHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", hm.questionHandler.DeleteQuestion)
			admin.GET("/questions/export", hm.questionHandler.ExportQuestions)

			admin.POST("/quizzes", hm.quizHandler.CreateQuiz)
			admin.PUT("/quizzes/:id", hm.quizHandler.UpdateQuiz)
			admin.DELETE("/quizzes/:id", hm.quizHandler.DeleteQuiz)
		}
	}
}

// AdminMiddleware gates mutating routes behind a shared-secret token
// supplied in the X-Admin-Token header. An empty configured token
// rejects every request rather than opening the gate.
func AdminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Token")
		if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
