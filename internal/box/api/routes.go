package api

import (
	"github.com/emicklei/go-restful/v3"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

const (
	mimeForm      = "application/x-www-form-urlencoded"
	mimeMultipart = "multipart/form-data"
)

// RegisterRoutes registers the box form and box maintenance routes
func RegisterRoutes(ws *restful.WebService, handler *BoxHandler) {
	ws.Route(ws.GET("/").To(handler.Home).
		Doc("render the box form").
		Produces("text/html").
		Returns(200, "OK", nil))

	ws.Route(ws.POST("/").To(handler.CreateBox).
		Doc("generate a box template PDF").
		Consumes(mimeForm, mimeMultipart).
		Produces(mimePDF, "text/html").
		Param(ws.FormParameter(model.FieldWidth, "box width").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldHeight, "box height").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldDepth, "box depth").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldMaterialThickness, "material thickness").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldCutWidth, "laser cut width").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldNotchLength, "notch length").DataType("number").Required(true)).
		Param(ws.FormParameter(model.FieldUnits, "units of the dimensions (mm, in or cm)").DataType("string")).
		Param(ws.FormParameter(model.FieldBoundingBox, "add a bounding box when present").DataType("string")).
		Returns(200, "OK", nil).
		Returns(400, "Bad Request", nil).
		Returns(502, "Bad Gateway", nil).
		Returns(504, "Gateway Timeout", nil))

	ws.Route(ws.POST("/api/v1/boxes/reclaim").To(handler.ReclaimBoxes).
		Doc("reclaim generated boxes").
		Produces(restful.MIME_JSON).
		Returns(200, "OK", model.BoxReclaimResult{}).
		Returns(500, "Internal Server Error", model.BoxError{}))
}
