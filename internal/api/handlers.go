package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"avatar-service/internal/picture"
)

func (s *Server) uploadPicture(c *gin.Context) {
	userID := c.GetString(userIDContextKey)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "no file uploaded"})
		return
	}

	// cheap reject before buffering anything
	if fileHeader.Size > picture.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "image cannot exceed 3MB"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "no file uploaded"})
		return
	}
	defer f.Close()

	// the multipart size field is client-supplied; cap the actual read too
	data, err := io.ReadAll(io.LimitReader(f, picture.MaxFileSize+1))
	if err != nil {
		s.log.Error("upload_read_failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "error uploading file"})
		return
	}
	if int64(len(data)) > picture.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "image cannot exceed 3MB"})
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	res, err := s.pictures.Upload(ctx, userID, data, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		s.writeUploadError(c, userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"msg":          "profile picture uploaded successfully",
		"presignedUrl": res.URL,
	})
}

func (s *Server) writeUploadError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, picture.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "no user found"})
	case errors.Is(err, picture.ErrNoFile):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "no file uploaded"})
	case errors.Is(err, picture.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "image cannot exceed 3MB"})
	case errors.Is(err, picture.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "user not found"})
	default:
		// normalize/storage/persist details stay in the logs
		s.log.Error("upload_failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "error uploading file"})
	}
}

func (s *Server) getPictureURL(c *gin.Context) {
	userID := c.GetString(userIDContextKey)

	ctx, cancel := s.ctx(c)
	defer cancel()

	url, err := s.pictures.PictureURL(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, picture.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "msg": "user not authenticated"})
		case errors.Is(err, picture.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "profile picture not found"})
		default:
			s.log.Error("picture_url_failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "error generating presigned URL"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"presignedUrl": url,
	})
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()

	status := "healthy"

	dbStatus := "connected"
	if s.db == nil {
		dbStatus = "not_configured"
	} else if err := s.db.Pool.Ping(ctx); err != nil {
		dbStatus = "disconnected"
		status = "unhealthy"
	}

	redisStatus := "connected"
	if s.redis == nil {
		redisStatus = "not_configured"
	} else if err := s.redis.RDB().Ping(ctx).Err(); err != nil {
		redisStatus = "disconnected"
		status = "unhealthy"
	}

	response := gin.H{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	}

	if status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
