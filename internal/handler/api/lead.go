package api

import (
	"errors"
	"net/http"

	reqdto "jaac-backend/internal/handler/dto/request"
	resdto "jaac-backend/internal/handler/dto/response"
	"jaac-backend/internal/handler/httperr"
	"jaac-backend/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body"

type LeadHandler struct {
	cmds commands.LeadCommands
}

func NewLeadHandler(cmds commands.LeadCommands) *LeadHandler {
	return &LeadHandler{cmds: cmds}
}

// @Summary Contact form
// @Description Send a contact inquiry to the team inbox
// @Tags leads
// @Accept json
// @Produce json
// @Param request body reqdto.ContactRequest true "Contact inquiry"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /contact [post]
func (h *LeadHandler) Contact(c *gin.Context) {
	var req reqdto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}
	if err := h.cmds.SubmitContact(c.Request.Context(), req); err != nil {
		httperr.Abort(c, err, "Failed to send contact us email")
		return
	}
	c.JSON(http.StatusOK, resdto.OK())
}

// @Summary Job application
// @Description Send a job application, with an optional résumé, to the team inbox
// @Tags leads
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Applicant name"
// @Param email formData string true "Applicant email"
// @Param phone formData string true "Applicant phone"
// @Param role formData string true "Employee, Speaker, Consultant or Other"
// @Param message formData string true "Cover message"
// @Param cv formData file false "Résumé (PDF, DOC or DOCX, 10MB max)"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /join-us [post]
func (h *LeadHandler) JoinUs(c *gin.Context) {
	var req reqdto.JoinUsRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
		return
	}

	var cv *commands.FileObject
	if req.CV != nil {
		f, err := req.CV.Open()
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read uploaded file", nil)
			return
		}
		defer f.Close()
		cv = &commands.FileObject{
			Name:        req.CV.Filename,
			ContentType: req.CV.Header.Get("Content-Type"),
			Size:        req.CV.Size,
			Body:        f,
		}
	}

	if err := h.cmds.SubmitApplication(c.Request.Context(), req, cv); err != nil {
		httperr.Abort(c, err, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, resdto.OK())
}

type UploadHandler struct {
	cmds commands.UploadCommands
}

func NewUploadHandler(cmds commands.UploadCommands) *UploadHandler {
	return &UploadHandler{cmds: cmds}
}

// @Summary Upload résumé
// @Description Store a résumé and return its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, DOC or DOCX, 10MB max"
// @Success 200 {object} upload.StoredFile
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, msgInvalidBody, nil)
			return
		}
		// An empty object lets the use case report the missing file.
		fh = nil
	}

	var file commands.FileObject
	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read uploaded file", nil)
			return
		}
		defer f.Close()
		file = commands.FileObject{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}

	stored, err := h.cmds.Upload(c.Request.Context(), file)
	if err != nil {
		httperr.Abort(c, err, "Failed to upload file")
		return
	}
	c.JSON(http.StatusOK, stored)
}
