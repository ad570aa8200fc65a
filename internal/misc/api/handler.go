package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"

	"github.com/boxmaker/boxmaker-web/internal/version"
)

// MiscHandler serves version and health information
type MiscHandler struct{}

// NewMiscHandler creates a new MiscHandler
func NewMiscHandler() *MiscHandler {
	return &MiscHandler{}
}

// GetVersion handles GET /api/v1/version
func (h *MiscHandler) GetVersion(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, version.Get(), restful.MIME_JSON)
}

// Health handles GET /api/v1/healthz
func (h *MiscHandler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndJson(http.StatusOK, map[string]string{"status": "ok"}, restful.MIME_JSON)
}

// RegisterRoutes registers the miscellaneous routes
func RegisterRoutes(ws *restful.WebService, handler *MiscHandler) {
	ws.Route(ws.GET("/api/v1/version").To(handler.GetVersion).
		Doc("get server version information").
		Produces(restful.MIME_JSON).
		Returns(200, "OK", version.Info{}))

	ws.Route(ws.GET("/api/v1/healthz").To(handler.Health).
		Doc("report server health").
		Produces(restful.MIME_JSON).
		Returns(200, "OK", nil))
}
