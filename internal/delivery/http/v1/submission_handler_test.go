package v1_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-applicant-intake/config"
	v1 "go-applicant-intake/internal/delivery/http/v1"
	"go-applicant-intake/internal/domain"
	"go-applicant-intake/pkg/apperror"
	"go-applicant-intake/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmissionUC struct {
	rec *domain.StoredRecord
	err error

	gotFields map[string][]string
	gotFile   *multipart.FileHeader
}

func (s *stubSubmissionUC) Submit(_ context.Context, fields map[string][]string, file *multipart.FileHeader) (*domain.StoredRecord, error) {
	s.gotFields = fields
	s.gotFile = file
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

func newTestRouter(uc domain.SubmissionUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()
	return v1.NewRouter(v1.RouterDeps{
		SubmissionUC: uc,
		Config:       &config.Config{FrontendURL: "http://localhost:3000"},
	})
}

func multipartRequest(t *testing.T, fields map[string][]string, resume []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if resume != nil {
		fw, err := mw.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = fw.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit-form", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSubmitFormEndpoint(t *testing.T) {
	fields := map[string][]string{
		"firstName": {"Jane"},
		"lastName":  {"Doe"},
		"email":     {"jane@x.com"},
		"phone":     {"555"},
	}

	t.Run("Should respond 200 once persistence succeeded", func(t *testing.T) {
		uc := &stubSubmissionUC{rec: &domain.StoredRecord{ID: "rec-1"}}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields, []byte("resume bytes")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Application submitted successfully")
		assert.Contains(t, w.Body.String(), "rec-1")

		assert.Equal(t, []string{"Jane"}, uc.gotFields["firstName"])
		require.NotNil(t, uc.gotFile)
		assert.Equal(t, "cv.pdf", uc.gotFile.Filename)
	})

	t.Run("Should pass no file when resume is omitted", func(t *testing.T) {
		uc := &stubSubmissionUC{rec: &domain.StoredRecord{ID: "rec-2"}}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, uc.gotFile)
	})

	t.Run("Should respond 400 on validation failure", func(t *testing.T) {
		uc := &stubSubmissionUC{err: apperror.BadRequest("education fields must have the same number of entries")}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "same number of entries")
	})

	t.Run("Should respond 500 on persistence failure", func(t *testing.T) {
		uc := &stubSubmissionUC{err: apperror.Internal(assert.AnError)}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, multipartRequest(t, fields, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Should respond 400 to a non-multipart body", func(t *testing.T) {
		uc := &stubSubmissionUC{rec: &domain.StoredRecord{ID: "rec-3"}}
		router := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/submit-form", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should serve the health check", func(t *testing.T) {
		router := newTestRouter(&stubSubmissionUC{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
