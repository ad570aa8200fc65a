package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
)

// renderFlags maps command line flags onto form field names
var renderFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"width", model.FieldWidth, "box width"},
	{"height", model.FieldHeight, "box height"},
	{"depth", model.FieldDepth, "box depth"},
	{"material-thickness", model.FieldMaterialThickness, "thickness of the sheet material"},
	{"cut-width", model.FieldCutWidth, "width of the laser cut (kerf)"},
	{"notch-length", model.FieldNotchLength, "length of the finger joint notches"},
}

func newRenderCommand(a *app) *cobra.Command {
	var (
		units       string
		boundingBox bool
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a box template PDF without starting the server",
		Example: `  boxmaker render --width 10 --height 5 --depth 3 \
    --material-thickness 0.25 --cut-width 0.1 --notch-length 2 --units in`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Box.Dir = outputDir
			}

			log := newLogger(cfg)
			defer log.Close()

			svc, _, err := newBoxService(cfg, log)
			if err != nil {
				return err
			}

			// Only flags given on the command line count as submitted
			values := url.Values{}
			for _, f := range renderFlags {
				if cmd.Flags().Changed(f.flag) {
					v, _ := cmd.Flags().GetString(f.flag)
					values.Set(f.field, v)
				}
			}
			values.Set(model.FieldUnits, units)
			if boundingBox {
				values.Set(model.FieldBoundingBox, "")
			}

			box, err := svc.Create(cmd.Context(), "cli", model.ParamsFromForm(values))
			if err != nil {
				var verrs model.ValidationErrors
				if errors.As(err, &verrs) {
					return fmt.Errorf("invalid box: %s", strings.Join(verrs, " "))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), box.Path)
			return nil
		},
	}

	for _, f := range renderFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().StringVar(&units, "units", string(model.UnitsMillimeters), "units of the dimensions (mm, cm or in)")
	cmd.Flags().BoolVar(&boundingBox, "bounding-box", false, "draw a bounding box around the parts")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the PDF (default from box.dir)")

	return cmd
}
