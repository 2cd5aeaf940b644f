package test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// MultipartFile builds a multipart request body containing a single file
// upload. It returns the body and the headers needed for the request.
func MultipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, map[string]string) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", filename)
	require.Nil(t, err)

	_, err = w.Write(content)
	require.Nil(t, err)

	require.Nil(t, mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}
