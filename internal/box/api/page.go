package api

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/flosch/pongo2/v6"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

//go:embed templates/*.html
var templatesFS embed.FS

// formFields lists the dimension inputs in display order
var formFields = []struct {
	Name  string
	Label string
}{
	{model.FieldWidth, "Width"},
	{model.FieldHeight, "Height"},
	{model.FieldDepth, "Depth"},
	{model.FieldMaterialThickness, "Material thickness"},
	{model.FieldCutWidth, "Cut width"},
	{model.FieldNotchLength, "Notch length"},
}

var unitOptions = []struct {
	Units model.Units
	Label string
}{
	{model.UnitsMillimeters, "Millimeters"},
	{model.UnitsInches, "Inches"},
	{model.UnitsCentimeters, "Centimeters"},
}

// Pages renders the HTML form
type Pages struct {
	home *pongo2.Template
}

// NewPages loads the embedded templates
func NewPages() (*Pages, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	set := pongo2.NewSet("boxmaker", pongo2.NewFSLoader(sub))
	home, err := set.FromFile("home.html")
	if err != nil {
		return nil, fmt.Errorf("failed to load home template: %w", err)
	}

	return &Pages{home: home}, nil
}

// Home renders the form. params repopulates the inputs and may be nil.
func (p *Pages) Home(params *model.BoxParams, errMsg string) ([]byte, error) {
	values := map[string]string{}
	if params != nil {
		values = params.FormValues()
	}

	fields := make([]map[string]string, 0, len(formFields))
	for _, f := range formFields {
		fields = append(fields, map[string]string{
			"name":  f.Name,
			"label": f.Label,
			"value": values[f.Name],
		})
	}

	selected := model.Units(values[model.FieldUnits])
	if !selected.Known() {
		selected = model.UnitsMillimeters
	}
	units := make([]map[string]interface{}, 0, len(unitOptions))
	for _, u := range unitOptions {
		units = append(units, map[string]interface{}{
			"value":    string(u.Units),
			"label":    u.Label,
			"selected": u.Units == selected,
		})
	}

	return p.home.ExecuteBytes(pongo2.Context{
		"error":        errMsg,
		"fields":       fields,
		"units":        units,
		"bounding_box": params != nil && params.BoundingBox,
	})
}
