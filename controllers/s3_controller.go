package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"adspot_server/services"
)

// GeneratePresignedURL generates a presigned URL for S3 uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	uploadURL, key, err := services.GenerateUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Failed to presign upload URL: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"uploadUrl": uploadURL,
		"key":       key,
	})
}

// GetPresignedReadURL generates a presigned URL for reading a stored image
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	readURL, err := services.GenerateReadURL(key)
	if err != nil {
		log.Printf("❌ Failed to presign read URL: %v", err)
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": readURL})
}
