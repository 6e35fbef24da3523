//go:build unit

package api_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"jaac-backend/internal/domain/upload"
	"jaac-backend/internal/handler/api"
	reqdto "jaac-backend/internal/handler/dto/request"
	"jaac-backend/internal/pkg/errs"
	"jaac-backend/internal/usecase/commands"
	"jaac-backend/tests/common/builder"
	"jaac-backend/tests/common/httptest"
	"jaac-backend/tests/common/testutil"
	commandsmock "jaac-backend/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LeadHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockLeads   *commandsmock.MockLeadCommands
	mockUploads *commandsmock.MockUploadCommands
}

func (s *LeadHandlerTestSuite) SetupTest() {
	s.router = httptest.NewRouter(s.T())
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLeads = commandsmock.NewMockLeadCommands(s.mockCtrl)
	s.mockUploads = commandsmock.NewMockUploadCommands(s.mockCtrl)

	leads := api.NewLeadHandler(s.mockLeads)
	uploads := api.NewUploadHandler(s.mockUploads)
	s.router.POST("/api/contact", leads.Contact)
	s.router.POST("/api/join-us", leads.JoinUs)
	s.router.POST("/api/upload", uploads.Upload)
}

func (s *LeadHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLeadHandlerSuite(t *testing.T) {
	suite.Run(t, new(LeadHandlerTestSuite))
}

// ================================================================================
// TestContact
// ================================================================================

func (s *LeadHandlerTestSuite) TestContact() {
	url := "/api/contact"
	dto := builder.NewContactBuilder().BuildDTO()

	s.Run("success: returns success flag", func() {
		s.mockLeads.EXPECT().SubmitContact(gomock.Any(), dto).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, dto)
		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(map[string]any{"success": true}, body)
	})

	s.Run("error: field errors are listed in details", func() {
		invalid := errs.Public(errs.FieldErrors{"email": "Invalid email address"}, "Invalid contact form")
		s.mockLeads.EXPECT().SubmitContact(gomock.Any(), gomock.Any()).Return(invalid)

		body := testutil.DtoMap(s.T(), dto, testutil.Field("email", "jane@"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid contact form")
		s.Equal(map[string]any{"email": "Invalid email address"}, httptest.DecodeError(s.T(), rec).Details)
	})

	s.Run("error: provider failure returns 500 with provider message", func() {
		failed := errs.Failure(errs.ErrEmailDispatch, "Failed to send contact us email", map[string]string{"user": "Key not found"})
		s.mockLeads.EXPECT().SubmitContact(gomock.Any(), gomock.Any()).Return(failed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, dto)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to send contact us email")
		s.Equal(map[string]any{"user": "Key not found"}, httptest.DecodeError(s.T(), rec).Details)
	})

	s.Run("error: oversized message is rejected by binding", func() {
		s.mockLeads.EXPECT().SubmitContact(gomock.Any(), gomock.Any()).Times(0)

		body := testutil.DtoMap(s.T(), dto, testutil.Field("message", strings.Repeat("a", 5001)))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
	})

	s.Run("error: malformed JSON", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, "not an object")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
	})
}

// ================================================================================
// TestJoinUs
// ================================================================================

func (s *LeadHandlerTestSuite) TestJoinUs() {
	url := "/api/join-us"
	form := builder.NewJoinUsBuilder().BuildForm()

	s.Run("success: résumé is handed to the use case", func() {
		s.mockLeads.EXPECT().SubmitApplication(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, req reqdto.JoinUsRequest, cv *commands.FileObject) error {
				s.Equal("John Smith", req.Name)
				s.Equal("Consultant", req.Role)
				s.Equal("cv.pdf", cv.Name)
				s.Equal(int64(8), cv.Size)
				content, err := io.ReadAll(cv.Body)
				s.Require().NoError(err)
				s.Equal("%PDF-1.7", string(content))
				return nil
			})

		rec := httptest.PerformMultipart(s.T(), s.router, url, form,
			httptest.FormFile{Field: "cv", Name: "cv.pdf", Content: []byte("%PDF-1.7")})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: résumé is optional", func() {
		s.mockLeads.EXPECT().SubmitApplication(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

		rec := httptest.PerformMultipart(s.T(), s.router, url, form)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: invalid résumé type is a 400", func() {
		invalid := errs.Public(errs.Mark(upload.ErrInvalidFileType, errs.ErrValidation), upload.ErrInvalidFileType.Error())
		s.mockLeads.EXPECT().SubmitApplication(gomock.Any(), gomock.Any(), gomock.Any()).Return(invalid)

		rec := httptest.PerformMultipart(s.T(), s.router, url, form,
			httptest.FormFile{Field: "cv", Name: "cv.exe", Content: []byte("MZ")})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Only PDF, DOC, and DOCX")
	})

	s.Run("error: dispatch failure is a 500", func() {
		failed := errs.Failure(errs.ErrEmailDispatch, "Failed to send email", "unauthorized")
		s.mockLeads.EXPECT().SubmitApplication(gomock.Any(), gomock.Any(), gomock.Any()).Return(failed)

		rec := httptest.PerformMultipart(s.T(), s.router, url, form)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to send email")
		s.Equal("unauthorized", httptest.DecodeError(s.T(), rec).Details)
	})
}

// ================================================================================
// TestUpload
// ================================================================================

func (s *LeadHandlerTestSuite) TestUpload() {
	url := "/api/upload"

	s.Run("success: returns the stored file", func() {
		stored := &upload.StoredFile{URL: "/uploads/1-2-cv.docx", Filename: "1-2-cv.docx", Size: 4, Type: "application/octet-stream"}
		s.mockUploads.EXPECT().Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f commands.FileObject) (*upload.StoredFile, error) {
				s.Equal("cv.docx", f.Name)
				s.Equal(int64(4), f.Size)
				return stored, nil
			})

		rec := httptest.PerformMultipart(s.T(), s.router, url, nil,
			httptest.FormFile{Field: "file", Name: "cv.docx", Content: []byte("docx")})
		var got upload.StoredFile
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(*stored, got)
	})

	s.Run("error: missing file reaches the use case empty", func() {
		s.mockUploads.EXPECT().Upload(gomock.Any(), commands.FileObject{}).
			Return(nil, errs.Public(errs.Mark(upload.ErrNoFile, errs.ErrValidation), upload.ErrNoFile.Error()))

		rec := httptest.PerformMultipart(s.T(), s.router, url, map[string]string{"other": "x"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "No file uploaded")
	})

	s.Run("error: storage failure is a 500", func() {
		s.mockUploads.EXPECT().Upload(gomock.Any(), gomock.Any()).
			Return(nil, errs.Failure(errs.ErrStorage, "Failed to upload file", "permission denied"))

		rec := httptest.PerformMultipart(s.T(), s.router, url, nil,
			httptest.FormFile{Field: "file", Name: "cv.pdf", Content: []byte("%PDF")})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to upload file")
		s.Equal("permission denied", httptest.DecodeError(s.T(), rec).Details)
	})
}
