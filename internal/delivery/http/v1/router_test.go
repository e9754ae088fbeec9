package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"go-hiring-sync/internal/audit"
	v1 "go-hiring-sync/internal/delivery/http/v1"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/internal/gateway"
	"go-hiring-sync/internal/repository/memory"
	"go-hiring-sync/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-secret"

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type blobs struct{ uploaded []string }

func (b *blobs) Upload(_ context.Context, bucket, path string, _ []byte, _ string) (string, error) {
	b.uploaded = append(b.uploaded, bucket+"/"+path)
	return path, nil
}

func (b *blobs) PublicURL(bucket, path string) string { return "https://files.test/" + bucket + "/" + path }

type api struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.TableStore
	blobs  *blobs
	tokens map[string]string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewTableStore()
	recorder := audit.NewRecorder(store, nil)
	b := &blobs{}
	svc := usecase.NewHiringService(usecase.Deps{
		Gateway: gateway.New(store, recorder, nil),
		Audit:   recorder,
		Blobs:   b,
		Clock:   func() time.Time { return now },
	})

	a := &api{t: t, store: store, blobs: b, tokens: map[string]string{}}
	for _, u := range []domain.User{
		{Name: "Admin", Email: "admin@acme.io", Role: domain.RoleAdmin},
		{Name: "Iris", Email: "iris@acme.io", Role: domain.RoleInterviewer},
	} {
		created, err := svc.CreateUser(context.Background(), u, "")
		require.NoError(t, err)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": created.ID}).SignedString([]byte(secret))
		require.NoError(t, err)
		a.tokens[u.Role] = tok
	}

	a.router = v1.NewRouter(v1.RouterDeps{
		Service:   svc,
		JWTSecret: secret,
		Clock:     func() time.Time { return now },
	})
	return a
}

func (a *api) do(role, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[role])
	}
	return a.serve(req)
}

func (a *api) serve(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

func TestHealth(t *testing.T) {
	t.Run("Should answer without authentication", func(t *testing.T) {
		a := newAPI(t)
		w, body := a.do("", http.MethodGet, "/v1/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
	})

	t.Run("Should report 503 when a dependency is down", func(t *testing.T) {
		a := newAPI(t)
		a.router = v1.NewRouter(v1.RouterDeps{
			Health: usecase.NewHealthUsecase(map[string]usecase.Probe{
				"store": func(context.Context) error { return errors.New("dial tcp: refused") },
			}),
			JWTSecret: secret,
		})

		w, body := a.do("", http.MethodGet, "/v1/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		detail, _ := body["error"].(map[string]any)
		assert.Equal(t, "degraded", detail["status"])
		assert.Equal(t, "error: dial tcp: refused", detail["store"])
	})
}

func TestHiringFlowOverHTTP(t *testing.T) {
	a := newAPI(t)

	w, _ := a.do("", http.MethodGet, "/v1/jobs", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := a.do(domain.RoleAdmin, http.MethodPost, "/v1/jobs", map[string]any{"title": "Backend Engineer", "status": "published", "applicants": 9})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := data(body)
	jobID := job["id"].(string)
	assert.Equal(t, float64(0), job["applicants"])

	w, body = a.do(domain.RoleAdmin, http.MethodPost, "/v1/candidates", map[string]any{"name": "Ada Lovelace", "email": "ada@example.com", "jobId": jobID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	candidateID := data(body)["id"].(string)

	_, body = a.do(domain.RoleAdmin, http.MethodGet, "/v1/jobs/"+jobID, nil)
	assert.Equal(t, float64(1), data(body)["applicants"])

	w, body = a.do(domain.RoleAdmin, http.MethodPost, "/v1/interviews", map[string]any{
		"candidateId": candidateID, "scheduledAt": now.Add(time.Hour).Format(time.RFC3339), "mode": "online",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	interviewID := data(body)["id"].(string)
	assert.Equal(t, "online", data(body)["mode"])

	w, body = a.do(domain.RoleAdmin, http.MethodDelete, "/v1/candidates/"+candidateID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cannot delete candidate. They have 1 active interview(s). Please cancel or complete them first.", body["message"])

	w, _ = a.do(domain.RoleAdmin, http.MethodGet, "/v1/feedback/aggregate/"+candidateID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, rec := range []string{"hire", "hold"} {
		w, _ = a.do(domain.RoleInterviewer, http.MethodPost, "/v1/feedback", map[string]any{
			"interviewId": interviewID, "candidateId": candidateID, "ratings": map[string]int{"technical": 4}, "recommendation": rec,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	_, body = a.do(domain.RoleAdmin, http.MethodGet, "/v1/feedback/aggregate/"+candidateID, nil)
	assert.Equal(t, "hire", data(body)["overallRecommendation"])

	w, _ = a.do(domain.RoleAdmin, http.MethodPatch, "/v1/interviews/"+interviewID, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = a.do(domain.RoleAdmin, http.MethodDelete, "/v1/candidates/"+candidateID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, body = a.do(domain.RoleAdmin, http.MethodGet, "/v1/jobs/"+jobID, nil)
	assert.Equal(t, float64(0), data(body)["applicants"])

	_, body = a.do(domain.RoleAdmin, http.MethodGet, "/v1/analytics", nil)
	assert.Equal(t, float64(1), data(body)["activeJobs"])
}

func TestRoleChecks(t *testing.T) {
	a := newAPI(t)

	w, _ := a.do(domain.RoleInterviewer, http.MethodPost, "/v1/jobs", map[string]any{"title": "QA", "status": "draft"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(domain.RoleInterviewer, http.MethodGet, "/v1/audit", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(domain.RoleInterviewer, http.MethodGet, "/v1/jobs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidationAndFailures(t *testing.T) {
	a := newAPI(t)

	w, body := a.do(domain.RoleAdmin, http.MethodPost, "/v1/jobs", map[string]any{"status": "draft"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", body["message"])

	w, _ = a.do(domain.RoleAdmin, http.MethodGet, "/v1/jobs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	a.store.Fail(memory.OpInsert, "jobs", errors.New("constraint violation"))
	w, _ = a.do(domain.RoleAdmin, http.MethodPost, "/v1/jobs", map[string]any{"title": "QA", "status": "draft"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUsersAndAudit(t *testing.T) {
	a := newAPI(t)

	_, me := a.do(domain.RoleAdmin, http.MethodGet, "/v1/users/me", nil)
	adminID := data(me)["id"].(string)

	w, body := a.do(domain.RoleAdmin, http.MethodDelete, "/v1/users/"+adminID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You can't delete your own account", body["message"])

	w, _ = a.do(domain.RoleInterviewer, http.MethodPost, "/v1/users/login", map[string]any{"previousUserId": adminID})
	require.Equal(t, http.StatusOK, w.Code)

	_, body = a.do(domain.RoleAdmin, http.MethodGet, "/v1/audit?action=LOGIN", nil)
	entries := body["data"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "User switch: Admin -> Iris", entries[0].(map[string]any)["details"])

	w, _ = a.do(domain.RoleAdmin, http.MethodGet, "/v1/audit/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "audit_log_")
	assert.Contains(t, w.Body.String(), "TIMESTAMP,ACTION")

	w, _ = a.do(domain.RoleAdmin, http.MethodGet, "/v1/audit/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeUpload(t *testing.T) {
	a := newAPI(t)
	_, body := a.do(domain.RoleAdmin, http.MethodPost, "/v1/jobs", map[string]any{"title": "QA", "status": "published"})
	jobID := data(body)["id"].(string)
	_, body = a.do(domain.RoleAdmin, http.MethodPost, "/v1/candidates", map[string]any{"name": "Ada", "jobId": jobID})
	candidateID := data(body)["id"].(string)

	upload := func(name, contentType string, content []byte) (*httptest.ResponseRecorder, map[string]any) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write(content)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/candidates/"+candidateID+"/resume", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+a.tokens[domain.RoleAdmin])
		return a.serve(req)
	}

	w, body := upload("cv.pdf", "application/pdf", []byte("%PDF-1.7 body"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cv.pdf", data(body)["resumeName"])
	assert.Contains(t, data(body)["resumeUrl"], "https://files.test/resumes/candidates/"+candidateID+"/")
	assert.Len(t, a.blobs.uploaded, 1)

	w, _ = upload("cv.pdf", "application/octet-stream", []byte("%PDF-1.7 body"))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = upload("cv.pdf", "application/pdf", []byte("not a pdf"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, a.blobs.uploaded, 2)
}
