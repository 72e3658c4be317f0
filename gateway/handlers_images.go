package gateway

import (
	"io"
	"net/http"

	"github.com/example/sweetshop/pkg/media"
	"github.com/gin-gonic/gin"
)

type deleteImageRequest struct {
	PublicID string `json:"publicId"`
}

func (g *Gateway) uploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no image file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read image file"})
		return
	}

	result, err := g.media.Upload(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"imageUrl": result.ImageURL,
		"publicId": result.PublicID,
	})
}

func (g *Gateway) deleteImage(c *gin.Context) {
	var req deleteImageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := g.media.Delete(c.Request.Context(), req.PublicID); err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
