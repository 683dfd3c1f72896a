package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/ironsheep/skeleton-api/internal/imaging"
)

const (
	formFieldFile  = "file"
	formFieldImage = "image"
	formFieldClose = "close"

	headerEndpoints = "X-Skeleton-Endpoints"
	headerBranches  = "X-Skeleton-Branches"
	headerFormat    = "X-Image-Format"

	// multipartOverhead is the allowance for boundaries and part headers on
	// top of MaxUploadBytes.
	multipartOverhead = 64 << 10

	// closeRadius is the structuring element used when gap closing is on.
	closeRadius = 1.0
)

var (
	errNoUpload       = errors.New("no image file provided, use 'file' as the form field name")
	errUploadTooLarge = errors.New("upload exceeds size limit")
)

// HealthResponse is the body of the liveness endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "healthy",
		Message: "Skeletonization API is running",
	})
}

func (s *Server) handleSkeletonize(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.readUpload(w, r)
	if err != nil {
		switch {
		case errors.Is(err, errUploadTooLarge):
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large, maximum is %d bytes", s.cfg.MaxUploadBytes))
		case errors.Is(err, errNoUpload):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusBadRequest, "failed to parse form")
		}
		return
	}

	p := s.pipeline
	if s.cfg.CloseGaps || formBool(r, formFieldClose) {
		p.CloseRadius = closeRadius
	}

	res, err := p.Process(r.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			log.Printf("Skeletonization of %s stopped after %s: %v", filename, s.cfg.RequestTimeout, err)
			writeError(w, r, http.StatusGatewayTimeout, "processing timed out")
		case errors.Is(err, context.Canceled):
			log.Printf("Skeletonization of %s abandoned: %v", filename, err)
		case errors.Is(err, imaging.ErrDecode):
			writeError(w, r, http.StatusUnprocessableEntity, "invalid image file")
		case errors.Is(err, imaging.ErrImageTooLarge):
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		default:
			log.Printf("Skeletonization error for %s: %v", filename, err)
			writeError(w, r, http.StatusInternalServerError, "failed to process image")
		}
		return
	}

	if s.cfg.Debug() {
		log.Printf("Skeletonized %s: %dx%d %s, %d endpoints, %d branch points",
			filename, res.Info.Width, res.Info.Height, res.Info.Format, res.Endpoints, res.Branches)
	}

	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Length", strconv.Itoa(len(res.PNG)))
	h.Set(headerEndpoints, strconv.Itoa(res.Endpoints))
	h.Set(headerBranches, strconv.Itoa(res.Branches))
	h.Set(headerFormat, res.Info.Format)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PNG); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// readUpload returns the bytes and name of the uploaded file.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	limit := s.cfg.MaxUploadBytes + multipartOverhead
	if r.ContentLength > limit {
		return nil, "", errUploadTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", errUploadTooLarge
		}
		return nil, "", fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile(formFieldFile)
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile(formFieldImage)
	}
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", errNoUpload
		}
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	if header.Size > s.cfg.MaxUploadBytes {
		return nil, "", errUploadTooLarge
	}
	if s.cfg.Debug() {
		log.Printf("Received file: %s, size: %d bytes", header.Filename, header.Size)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	return data, header.Filename, nil
}

// formBool reports whether the named form value parses as true.
func formBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.FormValue(name))
	return err == nil && v
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}
