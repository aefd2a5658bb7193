package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

// UploadDir returns the directory uploaded documents are stored in.
func UploadDir() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// UploadFile stores a single PDF document and returns its public path.
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "File exceeds the 10MB limit")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "application/pdf" || !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		respondError(c, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	storedName := fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	dst := filepath.Join(UploadDir(), storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, http.StatusInternalServerError, "File upload failed")
		return
	}

	publicPath := "/uploads/" + storedName
	c.JSON(http.StatusOK, gin.H{
		"message":      "File uploaded successfully",
		"filename":     storedName,
		"originalName": file.Filename,
		"size":         file.Size,
		"path":         publicPath,
		"filePath":     publicPath,
		"url":          fmt.Sprintf("http://%s%s", c.Request.Host, publicPath),
	})
}

type checkFileRequest struct {
	FilePath string `json:"filePath"`
}

// CheckFile reports whether an uploaded document still exists on disk.
func CheckFile(c *gin.Context) {
	var req checkFileRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FilePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"exists": false, "message": "No file path provided"})
		return
	}

	fullPath := filepath.Join(UploadDir(), path.Base(req.FilePath))
	_, err := os.Stat(fullPath)
	exists := err == nil

	message := "File not found"
	if exists {
		message = "File exists"
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":   exists,
		"filePath": req.FilePath,
		"message":  message,
	})
}
