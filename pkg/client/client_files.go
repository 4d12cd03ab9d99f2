package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxkit/voxkit/pkg/store"
)

type FileService struct {
	Options []RequestOption
}

func NewFileService(opts ...RequestOption) FileService {
	return FileService{
		Options: opts,
	}
}

type File = store.File

type FileUpload struct {
	FileID   string  `json:"fileId"`
	Filename string  `json:"filename"`
	FileSize int64   `json:"fileSize"`
	Duration float64 `json:"duration"`
	Format   string  `json:"format"`
}

func (r *FileService) Upload(ctx context.Context, path string, opts ...RequestOption) (*FileUpload, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	part, err := w.CreateFormFile("file", filepath.Base(path))

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.URL, "/")+"/api/files/upload", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result FileUpload

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *FileService) Get(ctx context.Context, id string, opts ...RequestOption) (*File, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.URL, "/")+"/api/files/"+id, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result File

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *FileService) Delete(ctx context.Context, id string, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, strings.TrimRight(c.URL, "/")+"/api/files/"+id, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	return decodeEnvelope(resp, nil)
}
