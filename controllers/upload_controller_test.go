package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloucester-auto/dealership-api/services"
)

func setupUploadRouter(t *testing.T) (*gin.Engine, *services.MockImageStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock := services.NewMockImageStore()
	services.SetImageStore(mock)

	router := gin.New()
	router.POST("/upload", UploadImage)
	router.POST("/upload-multiple", UploadMultipleImages)

	return router, mock
}

// writeImagePart adds a file part with an explicit Content-Type, the way
// browsers submit image uploads.
func writeImagePart(t *testing.T, writer *multipart.Writer, field, filename, contentType string, data []byte) {
	t.Helper()

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
}

func doMultipart(t *testing.T, router *gin.Engine, path string, build func(*multipart.Writer)) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadSingleImage(t *testing.T) {
	router, mock := setupUploadRouter(t)

	jpeg := bytes.Repeat([]byte{0xff, 0xd8, 0xff, 0xe0}, 12800) // ~50 KB
	w := doMultipart(t, router, "/upload", func(writer *multipart.Writer) {
		writeImagePart(t, writer, "image", "camry.jpg", "image/jpeg", jpeg)
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	url, ok := body["imageUrl"].(string)
	require.True(t, ok, "response should carry imageUrl")
	assert.True(t, mock.Stored(url), "payload should be in the store")
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router, _ := setupUploadRouter(t)

	w := doMultipart(t, router, "/upload", func(writer *multipart.Writer) {
		require.NoError(t, writer.WriteField("note", "no file here"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	router, mock := setupUploadRouter(t)

	w := doMultipart(t, router, "/upload", func(writer *multipart.Writer) {
		writeImagePart(t, writer, "image", "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mock.DeleteCalls())
}

func TestUploadMultipleImages(t *testing.T) {
	router, mock := setupUploadRouter(t)

	w := doMultipart(t, router, "/upload-multiple", func(writer *multipart.Writer) {
		for i := 0; i < 3; i++ {
			writeImagePart(t, writer, "images", fmt.Sprintf("img%d.png", i), "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
		}
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	urls, ok := body["imageUrls"].([]interface{})
	require.True(t, ok, "response should carry imageUrls")
	require.Len(t, urls, 3)
	for _, u := range urls {
		assert.True(t, mock.Stored(u.(string)))
	}
}

func TestUploadMultipleRejectsTooMany(t *testing.T) {
	router, _ := setupUploadRouter(t)

	w := doMultipart(t, router, "/upload-multiple", func(writer *multipart.Writer) {
		for i := 0; i < MaxGalleryUpload+1; i++ {
			writeImagePart(t, writer, "images", fmt.Sprintf("img%d.png", i), "image/png", []byte{0x89})
		}
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "max 20")
}

func TestUploadMultipleRejectsEmpty(t *testing.T) {
	router, _ := setupUploadRouter(t)

	w := doMultipart(t, router, "/upload-multiple", func(writer *multipart.Writer) {
		require.NoError(t, writer.WriteField("note", "nothing attached"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
