package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

const mimePDF = "application/pdf"

// Options configures a BoxService
type Options struct {
	// Dir is where generated PDFs are written
	Dir string
	// Renderer produces the PDFs
	Renderer Renderer
	// Namer names output files. Defaults to a Namer on time.Now.
	Namer *Namer
	// ReclaimAge is the minimum age of a PDF before Reclaim removes it.
	// Zero disables reclaiming.
	ReclaimAge time.Duration
	// Now is the clock used by Reclaim. Defaults to time.Now.
	Now func() time.Time
	// Logger is required
	Logger *logger.Logger
}

// BoxService validates box submissions and renders them into PDFs
type BoxService struct {
	dir        string
	renderer   Renderer
	validator  *Validator
	namer      *Namer
	reclaimAge time.Duration
	now        func() time.Time
	log        *logger.Logger
}

// New creates a BoxService and makes sure the output directory exists
func New(opts Options) (*BoxService, error) {
	if opts.Renderer == nil {
		return nil, errors.New("box renderer is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Dir == "" {
		return nil, errors.New("box directory is required")
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create box directory: %w", err)
	}

	namer := opts.Namer
	if namer == nil {
		namer = NewNamer(nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	opts.Logger.Info("Box service initialized with output directory: %s", opts.Dir)

	return &BoxService{
		dir:        opts.Dir,
		renderer:   opts.Renderer,
		validator:  NewValidator(),
		namer:      namer,
		reclaimAge: opts.ReclaimAge,
		now:        now,
		log:        opts.Logger,
	}, nil
}

// Dir returns the output directory
func (s *BoxService) Dir() string {
	return s.dir
}

// Validate returns the form messages for params, empty when valid
func (s *BoxService) Validate(params *model.BoxParams) model.ValidationErrors {
	return s.validator.Validate(params)
}

// Create validates params, runs the renderer once and checks that it left a
// PDF behind. source identifies the requester in the log. Invalid params are
// reported as model.ValidationErrors without running the renderer.
func (s *BoxService) Create(ctx context.Context, source string, params *model.BoxParams) (*model.RenderedBox, error) {
	if errs := s.Validate(params); len(errs) > 0 {
		s.log.Debug("Errors: %s", errs.Error())
		return nil, errs
	}

	if params.Units != "" && !params.Units.Known() {
		s.log.Debug("Unknown units %q, treating values as millimeters", params.Units)
	}

	spec, err := Translate(params)
	if err != nil {
		return nil, err
	}

	name := s.namer.Next()
	path := filepath.Join(s.dir, name)
	args := spec.Args()

	s.log.Debug("Creating box %s...", name)
	s.log.Info("%s - %s - %s", source, name, strings.Join(args, " "))

	if err := s.renderer.Render(ctx, path, args); err != nil {
		return nil, fmt.Errorf("failed to render box %s: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("box %s: %w", name, model.ErrNoOutput)
		}
		return nil, fmt.Errorf("failed to stat box %s: %w", name, err)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect box %s type: %w", name, err)
	}
	if !mime.Is(mimePDF) {
		return nil, fmt.Errorf("box %s is %s: %w", name, mime.String(), model.ErrNotPDF)
	}

	return &model.RenderedBox{
		Name:      name,
		Path:      path,
		Size:      info.Size(),
		Mime:      mime.String(),
		Args:      args,
		CreatedAt: info.ModTime(),
	}, nil
}

// BoxContent is an open generated box
type BoxContent struct {
	Reader  io.ReadSeekCloser
	Name    string
	Size    int64
	ModTime time.Time
}

// Open opens a generated box by file name for reading
func (s *BoxService) Open(name string) (*BoxContent, error) {
	if !IsBoxName(name) {
		return nil, fmt.Errorf("invalid box name %q: %w", name, model.ErrBoxNotFound)
	}

	path := filepath.Join(s.dir, name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("box %s: %w", name, model.ErrBoxNotFound)
		}
		return nil, fmt.Errorf("failed to open box %s: %w", name, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat box %s: %w", name, err)
	}

	return &BoxContent{
		Reader:  file,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
