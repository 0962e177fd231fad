package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/llm"
	"outreach-backend/internal/shared/server/respond"
)

func newHandlerRouter(t *testing.T, client llm.Client) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t, client)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", testUser)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) respond.ErrorResponse {
	t.Helper()
	var resp respond.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestCreateSessionEndpoint(t *testing.T) {
	r, _ := newHandlerRouter(t, &fakeLLM{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var sess Session
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.Step != StepInput || sess.ID == "" {
		t.Fatalf("session = %+v", sess)
	}
}

func TestGetUnknownSessionReturns404(t *testing.T) {
	r, _ := newHandlerRouter(t, &fakeLLM{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wizard/sessions/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "not_found" {
		t.Fatalf("code = %s", resp.Error.Code)
	}
}

func TestDiscoverWithoutResumeReturnsValidationError(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{})
	sess, _ := svc.Create(context.Background(), testUser)

	body := strings.NewReader(`{"university":"Uni","department":"CS"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/discover", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "validation_error" {
		t.Fatalf("code = %s", resp.Error.Code)
	}
}

func TestBusySessionReturns409(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{})
	sess, _ := svc.Create(context.Background(), testUser)
	if _, err := svc.Repo.Acquire(context.Background(), testUser, sess.ID); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/back", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "session_busy" {
		t.Fatalf("code = %s", resp.Error.Code)
	}
}

func multipartBody(t *testing.T, fileName string, contents []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(contents); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadRejectsNonPDFOverHTTP(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{})
	sess, _ := svc.Create(context.Background(), testUser)

	buf, contentType := multipartBody(t, "resume.txt", []byte("plain text, no magic"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/resume", buf)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "not_pdf" {
		t.Fatalf("code = %s", resp.Error.Code)
	}
}

func TestUploadAcceptsPDFOverHTTP(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{})
	sess, _ := svc.Create(context.Background(), testUser)

	buf, contentType := multipartBody(t, "resume.pdf", pdfBytes())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/resume", buf)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got Session
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Facts == nil || got.Facts.Name == "" {
		t.Fatalf("facts missing: %+v", got.Facts)
	}
}

func TestTranslationFailureMapsTo502(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{
		discover: func(ctx context.Context, in llm.DiscoverInput) ([]llm.Contact, error) {
			return nil, llm.ErrParse
		},
	})
	ctx := context.Background()
	sess, _ := svc.Create(ctx, testUser)
	if _, err := svc.UploadResume(ctx, testUser, sess.ID, "resume.pdf", bytes.NewReader(pdfBytes())); err != nil {
		t.Fatalf("upload: %v", err)
	}

	body := strings.NewReader(`{"university":"Uni","department":"CS"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/discover", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != "ai_translation_error" {
		t.Fatalf("code = %s", resp.Error.Code)
	}
}

func TestDispatchEndpointReturnsLaunchedURIs(t *testing.T) {
	r, svc := newHandlerRouter(t, &fakeLLM{})
	sess := reachReview(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sess.ID+"/dispatch", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Launched []struct {
			MailtoURI string `json:"mailtoUri"`
		} `json:"launched"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Launched) != 2 {
		t.Fatalf("launched = %d, want 2", len(resp.Launched))
	}
	if !strings.HasPrefix(resp.Launched[0].MailtoURI, "mailto:one@uni.edu?") {
		t.Fatalf("uri = %q", resp.Launched[0].MailtoURI)
	}
}
