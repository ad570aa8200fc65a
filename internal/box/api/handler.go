package api

import (
	"errors"
	"mime"
	"net"
	"net/http"

	"github.com/emicklei/go-restful/v3"

	"github.com/boxmaker/boxmaker-web/internal/box/service"
	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

const (
	mimeHTML = "text/html; charset=utf-8"
	mimePDF  = "application/pdf"

	// maxFormMemory bounds the multipart form held in memory
	maxFormMemory = 1 << 20
)

// BoxHandler handles HTTP requests for the box form
type BoxHandler struct {
	service *service.BoxService
	pages   *Pages
	log     *logger.Logger
}

// NewBoxHandler creates a new BoxHandler
func NewBoxHandler(service *service.BoxService, log *logger.Logger) (*BoxHandler, error) {
	pages, err := NewPages()
	if err != nil {
		return nil, err
	}
	return &BoxHandler{
		service: service,
		pages:   pages,
		log:     log,
	}, nil
}

// Home renders the empty box form
func (h *BoxHandler) Home(req *restful.Request, resp *restful.Response) {
	h.writeForm(resp, http.StatusOK, nil, "")
}

// CreateBox validates a form submission and answers with the generated PDF
func (h *BoxHandler) CreateBox(req *restful.Request, resp *restful.Response) {
	r := req.Request
	if err := parseForm(r); err != nil {
		h.log.Debug("Failed to parse form: %v", err)
		h.writeForm(resp, http.StatusBadRequest, nil, "The submitted form could not be read.")
		return
	}

	params := model.ParamsFromForm(r.PostForm)
	box, err := h.service.Create(r.Context(), clientAddr(r), params)
	if err != nil {
		h.writeCreateError(resp, params, err)
		return
	}

	content, err := h.service.Open(box.Name)
	if err != nil {
		h.log.Error("Failed to open box %s: %v", box.Name, err)
		h.writeForm(resp, http.StatusInternalServerError, params, "Your box could not be delivered. Please try again.")
		return
	}
	defer content.Reader.Close()

	resp.Header().Set("Content-Type", mimePDF)
	resp.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": content.Name}))
	http.ServeContent(resp, r, content.Name, content.ModTime, content.Reader)
}

// ReclaimBoxes removes generated boxes older than the reclaim age
func (h *BoxHandler) ReclaimBoxes(req *restful.Request, resp *restful.Response) {
	result, err := h.service.Reclaim(req.Request.Context())
	if err != nil {
		writeError(resp, http.StatusInternalServerError, "ReclaimBoxesError", err.Error())
		return
	}
	resp.WriteHeaderAndJson(http.StatusOK, result, restful.MIME_JSON)
}

func (h *BoxHandler) writeCreateError(resp *restful.Response, params *model.BoxParams, err error) {
	var (
		verrs   model.ValidationErrors
		toolErr *model.ToolError
	)

	switch {
	case errors.As(err, &verrs):
		h.writeForm(resp, http.StatusOK, params, verrs.Error())
	case errors.Is(err, model.ErrToolTimeout):
		h.log.Error("Box generation timed out: %v", err)
		h.writeForm(resp, http.StatusGatewayTimeout, params, "Generating your box took too long. Please try again.")
	case errors.As(err, &toolErr), errors.Is(err, model.ErrNoOutput), errors.Is(err, model.ErrNotPDF):
		h.log.Error("Box generation failed: %v", err)
		h.writeForm(resp, http.StatusBadGateway, params, "Your box could not be generated. Please check the dimensions and try again.")
	default:
		h.log.Error("Failed to create box: %v", err)
		h.writeForm(resp, http.StatusInternalServerError, params, "Something went wrong while generating your box.")
	}
}

func (h *BoxHandler) writeForm(resp *restful.Response, status int, params *model.BoxParams, errMsg string) {
	page, err := h.pages.Home(params, errMsg)
	if err != nil {
		h.log.Error("Failed to render form: %v", err)
		http.Error(resp, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp.Header().Set("Content-Type", mimeHTML)
	resp.WriteHeader(status)
	if _, err := resp.Write(page); err != nil {
		h.log.Debug("Failed to write form: %v", err)
	}
}

// writeError writes a structured error response
func writeError(resp *restful.Response, status int, code, message string) {
	resp.WriteHeaderAndJson(status, &model.BoxError{
		Code:    code,
		Message: message,
	}, restful.MIME_JSON)
}

// parseForm fills r.PostForm from an urlencoded or multipart body.
// ParseMultipartForm swallows urlencoded decoding errors, so the body is
// parsed with ParseForm first.
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != mimeMultipart {
		return nil
	}
	return r.ParseMultipartForm(maxFormMemory)
}

// clientAddr returns the host part of the request's remote address
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
