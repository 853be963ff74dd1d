package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gloucester-auto/dealership-api/services"
	"github.com/gloucester-auto/dealership-api/utils"
)

// MaxGalleryUpload caps how many images one multipart request may carry.
const MaxGalleryUpload = 20

// UploadImage handles POST /upload - single image upload (admin only)
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	url, err := storeUpload(c, fileHeader)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// UploadMultipleImages handles POST /upload-multiple - up to 20 gallery
// images in one request (admin only)
func UploadMultipleImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > MaxGalleryUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files (max 20)"})
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		url, err := storeUpload(c, fileHeader)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"imageUrls": urls})
}

// storeUpload reads one multipart file and hands it to the image store,
// which validates size and MIME type before writing anything.
func storeUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.WithError(closeErr).Warn("Failed to close uploaded file")
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return services.GetImageStore().Store(
		c.Request.Context(),
		data,
		uploadContentType(fileHeader, data),
		fileHeader.Filename,
	)
}

// uploadContentType prefers the declared part header and falls back to
// content sniffing when the client sent none.
func uploadContentType(fileHeader *multipart.FileHeader, data []byte) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return ""
}

func respondUploadError(c *gin.Context, err error) {
	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadErr.Message})
		return
	}

	logrus.WithError(err).Error("Upload failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
}
