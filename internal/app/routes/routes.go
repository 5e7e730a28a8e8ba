package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/controllers"
)

// SetupRouter configures all application routes. mutationMiddleware runs in
// front of the routes that rewrite the catalog.
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	mutationMiddleware ...gin.HandlerFunc,
) {
	// --- Pages ---
	router.GET("/", courseController.Index)
	router.GET("/catalog", courseController.GetCatalog)
	router.GET("/course/:code", courseController.GetCourseDetails)
	router.GET("/add_course", courseController.AddCourseForm)

	// --- Mutations ---
	mutations := router.Group("")
	mutations.Use(mutationMiddleware...)
	{
		mutations.POST("/save_course", courseController.SaveCourse)
		mutations.POST("/delete_course/:code", courseController.DeleteCourse)
	}
}
