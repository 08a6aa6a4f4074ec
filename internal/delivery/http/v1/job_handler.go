package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobspring-backend/internal/delivery/http/response"
	"jobspring-backend/internal/domain"
	"jobspring-backend/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, hr *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - no authentication required
	// These endpoints only return active jobs (server-side enforced)
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.PublicList)
		publicJobs.GET("/:id", handler.PublicGetDetails)
	}

	// HR routes - authentication + HR role required
	hrJobs := hr.Group("/jobs")
	{
		hrJobs.GET("", handler.ListCompany)
		hrJobs.GET("/:id", handler.GetForEdit)
		hrJobs.POST("", handler.Create)
		hrJobs.PUT("/:id", handler.Replace)
		hrJobs.DELETE("/:id", handler.Deactivate)
	}
}

type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Location       string   `json:"location"`
	EmploymentType int      `json:"employment_type" binding:"required"`
	SalaryMin      *float64 `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max" binding:"omitempty,gte=0"`
	Description    string   `json:"description"`
}

// ReplaceJobRequest is a partial overlay: absent fields keep the previous
// version's values.
type ReplaceJobRequest struct {
	Title          *string  `json:"title"`
	Location       *string  `json:"location"`
	EmploymentType *int     `json:"employment_type"`
	SalaryMin      *float64 `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max" binding:"omitempty,gte=0"`
	Description    *string  `json:"description"`
}

// Create godoc
// @Summary      Create a new job posting
// @Description  Create a new active posting under the caller's company (HR only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /hr/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), p.UserID, domain.JobInput{
		Title:          req.Title,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Description:    req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// Replace godoc
// @Summary      Edit a job posting
// @Description  Replace a posting: the old version is deactivated and a new active version is created
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int                true  "Job ID"
// @Param        job  body      ReplaceJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /hr/jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Replace(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	var req ReplaceJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.ReplaceJob(c.Request.Context(), p.UserID, id, domain.JobPatch{
		Title:          req.Title,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Description:    req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Deactivate godoc
// @Summary      Take a job posting offline
// @Description  Deactivate a posting; pending applications are invalidated asynchronously
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /hr/jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Deactivate(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	if err := h.jobUC.DeactivateJob(c.Request.Context(), p.UserID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deactivated", nil)
}

// GetForEdit returns any version of a posting owned by the caller's
// company, active or not, so the edit form can prefill.
func (h *JobHandler) GetForEdit(c *gin.Context) {
	p, ok := principalFrom(c)
	if !ok {
		return
	}

	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	job, err := h.jobUC.GetJobForEdit(c.Request.Context(), p.UserID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// ListCompany godoc
// @Summary      List the caller's company postings
// @Tags         jobs
// @Produce      json
// @Param        status     query     int     false  "Status filter (0 active, 1 inactive)"
// @Param        keyword    query     string  false  "Title keyword"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /hr/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListCompany(c *gin.Context) {
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

	jobs, total, err := h.jobUC.ListCompanyJobs(c.Request.Context(), p.UserID, status, c.Query("keyword"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// PublicList godoc
// @Summary      List active jobs (public)
// @Description  Board listing with keyword search, active postings only
// @Tags         jobs
// @Produce      json
// @Param        keyword    query     string  false  "Title keyword"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	page, pageSize := pageParams(c)

	// SECURITY: Always return only active jobs - no client-side bypass possible
	jobs, total, err := h.jobUC.ListActiveJobs(c.Request.Context(), c.Query("keyword"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Public job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// PublicGetDetails godoc
// @Summary      Get active job details (public)
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	id, appErr := pathID(c)
	if appErr != nil {
		c.Error(appErr)
		return
	}

	job, err := h.jobUC.GetActiveJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// pageParams reads the standard pagination query params with defaults.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}

// pathID parses the :id path param.
func pathID(c *gin.Context) (int64, *apperror.AppError) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}

// optionalIntQuery parses an optional integer query parameter.
func optionalIntQuery(c *gin.Context, name string) (*int, *apperror.AppError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.BadRequest("Invalid " + name + " parameter")
	}
	return &v, nil
}

// principalFrom extracts the authenticated Principal set by AuthMiddleware.
// Aborts with 401 when the request somehow reached a protected handler
// without one.
func principalFrom(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(string(domain.KeyPrincipal))
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		c.Abort()
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		c.Abort()
		return domain.Principal{}, false
	}
	return p, true
}
