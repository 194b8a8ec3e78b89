package v1

import (
	"mime/multipart"
	"net/http"

	"go-applicant-intake/internal/delivery/http/response"
	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewSubmissionHandler registers the submission route (public, no auth
// required). extra middleware (rate limiting) is applied to the POST only.
func NewSubmissionHandler(public *gin.RouterGroup, submissionUC domain.SubmissionUsecase, extra ...gin.HandlerFunc) {
	handler := &SubmissionHandler{
		submissionUC: submissionUC,
	}

	handlers := append(extra, handler.SubmitForm)
	public.POST("/submit-form", handlers...)
}

// SubmitForm godoc
// @Summary      Submit Job Application
// @Description  Accepts the application form (multipart/form-data) with repeated education/experience groups and an optional resume file.
// @Tags         application
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /submit-form [post]
func (h *SubmissionHandler) SubmitForm(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("invalid multipart form data"))
		return
	}

	var file *multipart.FileHeader
	if files := form.File["resume"]; len(files) > 0 {
		file = files[0]
	}

	rec, err := h.submissionUC.Submit(c.Request.Context(), form.Value, file)
	if err != nil {
		c.Error(err)
		return
	}

	// 200 rides on persistence alone; notification sinks are
	// fire-and-forget and never change this response.
	response.Success(c, http.StatusOK, "Application submitted successfully.", gin.H{
		"id": rec.ID,
	})
}
