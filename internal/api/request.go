package api

import (
	"encoding/json" // JSON body decoding
	"errors"        // Sentinel errors
	"io"            // Reading uploaded parts
	"net/http"      // Body size limit
	"path/filepath" // Upload file names
	"strings"       // Content type checks

	"github.com/gabriel-vasile/mimetype" // Upload content sniffing
	"github.com/gin-gonic/gin"           // Gin web framework

	"realty_portal/internal/upsert" // Descriptors and uploads
)

var (
	errBadBody      = errors.New("malformed request body")
	errBodyTooLarge = errors.New("request body too large")
	errNotImage     = errors.New("upload is not an image")
)

// defaultMultipartMemory applies when no upload limit is configured
const defaultMultipartMemory = 32 << 20

// imageTypes are the upload formats accepted under images; SVG is left out since it can carry script
var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff"}

// nestedRequest is a parent write request split into scalar fields and child collections
type nestedRequest struct {
	Fields map[string]string
	Files  []upsert.Uploaded
	Images []upsert.Descriptor
	Rooms  []upsert.Descriptor
}

// decodeNested reads a multipart, urlencoded or JSON body of at most maxBytes; zero means no cap
func decodeNested(c *gin.Context, maxBytes int64) (*nestedRequest, error) {
	req := &nestedRequest{Fields: map[string]string{}}
	maxMemory := int64(defaultMultipartMemory)
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		maxMemory = maxBytes
	}
	contentType := c.ContentType()
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
			return nil, bodyError(err)
		}
		form := c.Request.MultipartForm
		req.setValues(form.Value)
		// File parts named images are uploads, in arrival order
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			up, err := sniffImage(fh.Filename, data)
			if err != nil {
				return nil, err
			}
			req.Files = append(req.Files, up)
		}
	case contentType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		req.setValues(c.Request.PostForm)
	default:
		var body map[string]json.RawMessage
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
			return nil, bodyError(err)
		}
		for key, raw := range body {
			switch key {
			case "images":
				req.Images = upsert.DescriptorsFromJSON(raw)
			case "rooms", "bedrooms":
				req.Rooms = upsert.DescriptorsFromJSON(raw)
			default:
				req.Fields[key] = scalar(raw)
			}
		}
	}
	return req, nil
}

// bodyError tells an oversized body apart from a malformed one
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return errBadBody
}

// sniffImage checks the upload bytes and names the file after the detected type,
// so the stored extension never comes from the client
func sniffImage(filename string, data []byte) (upsert.Uploaded, error) {
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), imageTypes...) {
		return upsert.Uploaded{}, errNotImage
	}
	base := filepath.Base(filename)
	return upsert.Uploaded{
		Filename:    strings.TrimSuffix(base, filepath.Ext(base)) + mt.Extension(),
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// setValues routes text parts; the last value of a repeated key wins
func (r *nestedRequest) setValues(values map[string][]string) {
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		v := vals[len(vals)-1]
		switch key {
		case "images":
			r.Images = upsert.ParseDescriptors(v)
		case "rooms", "bedrooms":
			r.Rooms = upsert.ParseDescriptors(v)
		default:
			r.Fields[key] = v
		}
	}
}

// scalar flattens a JSON value to the text a form field would carry
func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw) // numbers and booleans keep their literal text
}
