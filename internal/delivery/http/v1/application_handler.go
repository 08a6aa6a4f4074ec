package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobspring-backend/internal/delivery/http/middleware"
	"jobspring-backend/internal/delivery/http/response"
	"jobspring-backend/internal/domain"
	"jobspring-backend/pkg/apperror"
	"jobspring-backend/pkg/security"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(jobseeker *gin.RouterGroup, hr *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Jobseeker routes
	{
		jobseeker.POST("/jobs/:jobId/apply", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.Apply)
		jobseeker.GET("/applications", handler.ListMine)
		jobseeker.POST("/applications/:id/withdraw", handler.Withdraw)
	}

	// HR routes
	{
		hr.GET("/applications", handler.ListCompany)
		hr.GET("/applications/:id", handler.GetDetail)
		hr.PATCH("/applications/:id", handler.UpdateStatus)
	}
}

// UpdateApplicationStatusRequest carries the new status code for an HR
// decision.
type UpdateApplicationStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application. The resume is taken from the candidate's profile when available, otherwise from the uploaded file (multipart form field "resume").
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        jobId           path      int     true   "Job ID"
// @Param        resume_profile  formData  string  false  "Free-form introduction"
// @Param        resume          formData  file    false  "Resume file (pdf, doc, docx, zip or image, max 10 MiB)"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobseeker/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || jobID <= 0 {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	form := domain.ApplicationForm{
		ResumeProfile: c.PostForm("resume_profile"),
	}

	upload, appErr := readResumeUpload(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	id, err := h.applicationUC.Apply(c.Request.Context(), p.UserID, jobID, form, upload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", gin.H{
		"application_id": id,
	})
}

// readResumeUpload pulls the optional "resume" file out of the multipart
// form. A missing file is not an error here; the usecase decides whether a
// resume source exists at all.
func readResumeUpload(c *gin.Context) (*domain.ResumeUpload, *apperror.AppError) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > security.MaxResumeSize {
		return nil, apperror.BadRequest("Resume file exceeds the maximum allowed size")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxResumeSize+1))
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}
	if int64(len(data)) > security.MaxResumeSize {
		return nil, apperror.BadRequest("Resume file exceeds the maximum allowed size")
	}

	return &domain.ResumeUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListMine godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Param        status     query     int  false  "Status filter"
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobseeker/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	status, appErr := optionalIntQuery(c, "status")
	if appErr != nil {
		c.Error(appErr)
		return
	}

	apps, total, err := h.applicationUC.ListMine(c.Request.Context(), p.UserID, status, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{
		"applications": apps,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Mark one of the caller's own applications as withdrawn
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobseeker/applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	if err := h.applicationUC.Withdraw(c.Request.Context(), p.UserID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// ListCompany godoc
// @Summary      List applications for the caller's company
// @Tags         applications
// @Produce      json
// @Param        company_id  query     int  false  "Company id cross-check"
// @Param        job_id      query     int  false  "Filter by job"
// @Param        status      query     int  false  "Status filter"
// @Param        page        query     int  false  "Page number"
// @Param        page_size   query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /hr/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListCompany(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	status, appErr := optionalIntQuery(c, "status")
	if appErr != nil {
		c.Error(appErr)
		return
	}
	companyID, appErr := optionalInt64Query(c, "company_id")
	if appErr != nil {
		c.Error(appErr)
		return
	}
	jobID, appErr := optionalInt64Query(c, "job_id")
	if appErr != nil {
		c.Error(appErr)
		return
	}

	apps, total, err := h.applicationUC.ListCompanyApplications(c.Request.Context(), p.UserID, companyID, jobID, status, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{
		"applications": apps,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// GetDetail godoc
// @Summary      Get application detail (HR)
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /hr/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	app, err := h.applicationUC.GetDetailForCompanyMember(c.Request.Context(), p.UserID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application detail", app)
}

// UpdateStatus godoc
// @Summary      Update application status (HR)
// @Description  Move an application through the screening pipeline
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                             true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "New status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /hr/applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), p.UserID, id, *req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// optionalInt64Query parses an optional int64 query parameter.
func optionalInt64Query(c *gin.Context, name string) (*int64, *apperror.AppError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.BadRequest("Invalid " + name + " parameter")
	}
	return &v, nil
}
