package handler

import (
	"FlowVault/config"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	config.InitConfig()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newUploadRouter() *gin.Engine {
	router := gin.New()
	router.POST("/api/upload", func(c *gin.Context) {
		c.Set("user_id", "handler-test-user")
		UploadFile(c)
	})
	return router
}

func buildUploadBody(t *testing.T, fileName string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatal(err)
		}
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func postUpload(t *testing.T, fileName string, fileData []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := buildUploadBody(t, fileName, fileData, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	newUploadRouter().ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad response body %q: %v", recorder.Body.String(), err)
	}
	if envelope.Success {
		t.Fatalf("expected failure envelope, got %q", recorder.Body.String())
	}
	return envelope.Error
}

func TestUploadRejectsMalformedMetadata(t *testing.T) {
	recorder := postUpload(t, "note.txt", []byte("hello"), map[string]string{
		"metadata": "{not valid json",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, recorder); code != "INVALID_METADATA" {
		t.Fatalf("error code = %q, want INVALID_METADATA", code)
	}
}

func TestUploadAcceptsEmptyMetadataField(t *testing.T) {
	// An empty metadata field is not an error; the request must fail
	// later for the unknown duration, not for the metadata.
	recorder := postUpload(t, "note.txt", []byte("hello"), map[string]string{
		"metadata": "   ",
		"duration": "3h",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, recorder); code != "INVALID_UPLOAD_OPTIONS" {
		t.Fatalf("error code = %q, want INVALID_UPLOAD_OPTIONS", code)
	}
}

func TestUploadRejectsBadDuration(t *testing.T) {
	recorder := postUpload(t, "note.txt", []byte("hello"), map[string]string{
		"metadata": `{"source":"cli"}`,
		"duration": "forever",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, recorder); code != "INVALID_UPLOAD_OPTIONS" {
		t.Fatalf("error code = %q, want INVALID_UPLOAD_OPTIONS", code)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	recorder := postUpload(t, "", nil, map[string]string{"duration": "1h"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, recorder); code != "NO_FILE" {
		t.Fatalf("error code = %q, want NO_FILE", code)
	}
}
