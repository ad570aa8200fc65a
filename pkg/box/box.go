package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Form field names accepted by the box form
const (
	FieldWidth             = "width"
	FieldHeight            = "height"
	FieldDepth             = "depth"
	FieldMaterialThickness = "material_thickness"
	FieldCutWidth          = "cut_width"
	FieldNotchLength       = "notch_length"
	FieldUnits             = "units"
	FieldBoundingBox       = "bounding_box"
)

// Units is the measurement unit a box was submitted in
type Units string

const (
	UnitsMillimeters Units = "mm"
	UnitsInches      Units = "in"
	UnitsCentimeters Units = "cm"
)

// Factor returns the multiplier that converts u into millimeters.
// Unknown units are treated as millimeters.
func (u Units) Factor() float64 {
	switch u {
	case UnitsInches:
		return 25.4
	case UnitsCentimeters:
		return 10
	default:
		return 1
	}
}

// Known reports whether u is one of the units the form offers
func (u Units) Known() bool {
	switch u {
	case UnitsMillimeters, UnitsInches, UnitsCentimeters:
		return true
	}
	return false
}

// BoxParams is a box submission as typed by the user. Dimension fields are
// nil when the field was not submitted at all.
type BoxParams struct {
	Width             *string `form:"width" label:"Width" validate:"required,float"`
	Height            *string `form:"height" label:"Height" validate:"required,float"`
	Depth             *string `form:"depth" label:"Depth" validate:"required,float"`
	MaterialThickness *string `form:"material_thickness" label:"Material thickness" validate:"required,float"`
	CutWidth          *string `form:"cut_width" label:"Cut width" validate:"required,float"`
	NotchLength       *string `form:"notch_length" label:"Notch length" validate:"required,float"`
	Units             Units   `form:"units"`
	BoundingBox       bool    `form:"bounding_box"`
}

// ParamsFromForm builds BoxParams from submitted form values. The bounding
// box flag is set whenever the field is present, whatever its value.
func ParamsFromForm(values url.Values) *BoxParams {
	field := func(name string) *string {
		v, ok := values[name]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}

	_, boundingBox := values[FieldBoundingBox]

	return &BoxParams{
		Width:             field(FieldWidth),
		Height:            field(FieldHeight),
		Depth:             field(FieldDepth),
		MaterialThickness: field(FieldMaterialThickness),
		CutWidth:          field(FieldCutWidth),
		NotchLength:       field(FieldNotchLength),
		Units:             Units(values.Get(FieldUnits)),
		BoundingBox:       boundingBox,
	}
}

// FormValues returns the submitted values keyed by field name, for
// repopulating the form. Missing fields map to the empty string.
func (p *BoxParams) FormValues() map[string]string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return map[string]string{
		FieldWidth:             deref(p.Width),
		FieldHeight:            deref(p.Height),
		FieldDepth:             deref(p.Depth),
		FieldMaterialThickness: deref(p.MaterialThickness),
		FieldCutWidth:          deref(p.CutWidth),
		FieldNotchLength:       deref(p.NotchLength),
		FieldUnits:             string(p.Units),
		FieldBoundingBox:       strconv.FormatBool(p.BoundingBox),
	}
}

// BoxSpec is a validated box with every dimension in millimeters
type BoxSpec struct {
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	Depth             float64 `json:"depth"`
	MaterialThickness float64 `json:"material_thickness"`
	CutWidth          float64 `json:"cut_width"`
	NotchLength       float64 `json:"notch_length"`
	BoundingBox       bool    `json:"bounding_box"`
}

// Args returns the positional arguments the geometry tool expects after the
// output path: the six dimensions in millimeters followed by the bounding
// box flag.
func (s *BoxSpec) Args() []string {
	return []string{
		FormatMillimeters(s.Width),
		FormatMillimeters(s.Height),
		FormatMillimeters(s.Depth),
		FormatMillimeters(s.MaterialThickness),
		FormatMillimeters(s.CutWidth),
		FormatMillimeters(s.NotchLength),
		strconv.FormatBool(s.BoundingBox),
	}
}

// FormatMillimeters formats v with the shortest exact representation and
// always keeps a fractional part, so 20 becomes "20.0" and 25.4 stays "25.4".
func FormatMillimeters(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
