package v1

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/models"
)

// uploadedFile reads the form file of an attachment upload and returns its
// metadata together with the raw payload. The optional "description" form
// field is carried over into the metadata.
func uploadedFile(c *gin.Context) (models.FileMeta, []byte, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return models.FileMeta{}, nil, errNoFilePost
	}

	if err != nil {
		return models.FileMeta{}, nil, err
	}

	f, err := formFile.Open()
	if err != nil {
		return models.FileMeta{}, nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.FileMeta{}, nil, err
	}

	meta := models.FileMeta{
		Name:        formFile.Filename,
		ContentType: formFile.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		Description: c.PostForm("description"),
	}

	if meta.ContentType == "" {
		meta.ContentType = "application/octet-stream"
	}

	return meta, content, nil
}

// serveFile writes a file download response.
func serveFile(c *gin.Context, meta models.FileMeta, content []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+meta.Name+`"`)
	c.Data(200, meta.ContentType, content)
}
