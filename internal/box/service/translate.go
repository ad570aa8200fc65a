package service

import (
	"fmt"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

// Translate converts validated params into a millimeter BoxSpec
func Translate(params *model.BoxParams) (*model.BoxSpec, error) {
	spec := &model.BoxSpec{BoundingBox: params.BoundingBox}
	factor := params.Units.Factor()

	fields := []struct {
		name string
		raw  *string
		dst  *float64
	}{
		{model.FieldWidth, params.Width, &spec.Width},
		{model.FieldHeight, params.Height, &spec.Height},
		{model.FieldDepth, params.Depth, &spec.Depth},
		{model.FieldMaterialThickness, params.MaterialThickness, &spec.MaterialThickness},
		{model.FieldCutWidth, params.CutWidth, &spec.CutWidth},
		{model.FieldNotchLength, params.NotchLength, &spec.NotchLength},
	}

	for _, f := range fields {
		if f.raw == nil {
			return nil, fmt.Errorf("missing field %s", f.name)
		}
		v, ok := ParseNumber(*f.raw)
		if !ok {
			return nil, fmt.Errorf("field %s is not a number: %q", f.name, *f.raw)
		}
		*f.dst = v * factor
	}

	return spec, nil
}
