package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/app/views"
	"github.com/yigit/coursecatalog/internal/middleware"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/flash"
)

// Span names emitted by the handlers. Dashboards depend on them.
const (
	SpanIndex         = "index"
	SpanCourseCatalog = "course_catalog"
	SpanCourseDetails = "course_details"
	SpanAddCourse     = "add_course"
	SpanSaveCourse    = "save_course"
	SpanDeleteCourse  = "delete_course"
)

// CatalogPath is where every mutation redirects to
const CatalogPath = "/catalog"

// SaveFailedNotice is shown for any failure while saving a course
const SaveFailedNotice = "An error occurred while saving the course."

// MaxNoticeValueLength is the number of characters of a course name or code
// quoted in a notice
const MaxNoticeValueLength = 100

// courseFormFields lists the required form fields in the order they are checked
var courseFormFields = []string{"name", "code", "description", "instructor"}

// CourseController handles the catalog pages
type CourseController struct {
	courseService services.CourseService
	notices       *flash.Store
	tracer        trace.Tracer
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, notices *flash.Store, tracer trace.Tracer, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		notices:       notices,
		tracer:        tracer,
		logger:        logger,
	}
}

// Index renders the home page
func (c *CourseController) Index(ctx *gin.Context) {
	_, span := c.tracer.Start(ctx.Request.Context(), SpanIndex)
	defer span.End()

	c.render(ctx, views.IndexTemplate, gin.H{"title": "Home"})
}

// GetCatalog lists every course
func (c *CourseController) GetCatalog(ctx *gin.Context) {
	reqCtx, span := c.tracer.Start(ctx.Request.Context(), SpanCourseCatalog)
	defer span.End()

	courses, err := c.courseService.ListCourses(reqCtx)
	if err != nil {
		failSpan(span, err)
		middleware.HandleError(ctx, err)
		return
	}

	span.SetAttributes(attribute.Int("course_count", len(courses)))
	c.render(ctx, views.CatalogTemplate, gin.H{
		"title":   "Catalog",
		"courses": courses,
	})
}

// GetCourseDetails shows one course, or redirects to the catalog with an
// error notice when the code is unknown
func (c *CourseController) GetCourseDetails(ctx *gin.Context) {
	code := ctx.Param("code")
	reqCtx, span := c.tracer.Start(ctx.Request.Context(), SpanCourseDetails)
	defer span.End()

	course, err := c.courseService.GetCourse(reqCtx, code)
	if err != nil {
		if services.IsNotFound(err) {
			span.SetAttributes(attribute.String("error", err.Error()))
			c.redirectWithError(ctx, fmt.Sprintf("No course found with code '%s'.", shorten(code)))
			return
		}
		failSpan(span, err)
		middleware.HandleError(ctx, err)
		return
	}

	span.SetAttributes(attribute.String("course_code", course.Code))
	c.render(ctx, views.CourseDetailsTemplate, gin.H{
		"title":  course.Name,
		"course": course,
	})
}

// AddCourseForm renders the add-course form
func (c *CourseController) AddCourseForm(ctx *gin.Context) {
	_, span := c.tracer.Start(ctx.Request.Context(), SpanAddCourse)
	defer span.End()

	c.render(ctx, views.AddCourseTemplate, gin.H{"title": "Add course"})
}

// SaveCourse appends the submitted course. Every failure, including catalog
// I/O errors, becomes a generic notice; the cause is logged and recorded on
// the span.
func (c *CourseController) SaveCourse(ctx *gin.Context) {
	reqCtx, span := c.tracer.Start(ctx.Request.Context(), SpanSaveCourse)
	defer span.End()

	course, err := courseFromForm(ctx)
	if err == nil {
		err = c.courseService.AddCourse(reqCtx, *course)
	}
	if err != nil {
		c.logger.Error().Err(err).
			Str("request_id", ctx.GetString(middleware.RequestIDKey)).
			Msg("Failed to save course")
		failSpan(span, err)
		span.SetAttributes(attribute.String("error", err.Error()))
		c.redirectWithError(ctx, SaveFailedNotice)
		return
	}

	span.SetAttributes(
		attribute.String("course_name", course.Name),
		attribute.String("course_code", course.Code),
	)
	c.redirectWithSuccess(ctx, fmt.Sprintf("Course '%s' has been added.", shorten(course.Name)))
}

// DeleteCourse removes every course with the code in the path. An unknown
// code still reports success.
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	code := ctx.Param("code")
	reqCtx, span := c.tracer.Start(ctx.Request.Context(), SpanDeleteCourse)
	defer span.End()

	span.SetAttributes(attribute.String("deleted_course_code", code))

	if err := c.courseService.DeleteCourse(reqCtx, code); err != nil {
		failSpan(span, err)
		middleware.HandleError(ctx, err)
		return
	}

	c.redirectWithSuccess(ctx, fmt.Sprintf("Course with code '%s' has been deleted.", shorten(code)))
}

// courseFromForm builds a course from the submitted form. Fields only need
// to be present; empty values are accepted.
func courseFromForm(ctx *gin.Context) (*models.Course, error) {
	values := make(map[string]string, len(courseFormFields))
	for _, field := range courseFormFields {
		value, ok := ctx.GetPostForm(field)
		if !ok {
			return nil, apperrors.NewMissingFieldError(field)
		}
		values[field] = value
	}

	return &models.Course{
		Name:        values["name"],
		Code:        values["code"],
		Description: values["description"],
		Instructor:  values["instructor"],
	}, nil
}

func (c *CourseController) render(ctx *gin.Context, name string, data gin.H) {
	data["notices"] = c.notices.Pop(ctx.Writer, ctx.Request)
	ctx.HTML(http.StatusOK, name, data)
}

func (c *CourseController) redirectWithSuccess(ctx *gin.Context, message string) {
	if err := c.notices.Success(ctx.Writer, ctx.Request, message); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to store notice")
	}
	ctx.Redirect(http.StatusFound, CatalogPath)
}

func (c *CourseController) redirectWithError(ctx *gin.Context, message string) {
	if err := c.notices.Error(ctx.Writer, ctx.Request, message); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to store notice")
	}
	ctx.Redirect(http.StatusFound, CatalogPath)
}

// shorten caps user input embedded in a notice so the signed cookie stays
// under the browser size limit
func shorten(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxNoticeValueLength {
		return s
	}
	return string(runes[:MaxNoticeValueLength]) + "..."
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
