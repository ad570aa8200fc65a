package model

import "time"

// RenderedBox is a generated template PDF on disk
type RenderedBox struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Mime      string    `json:"mime"`
	Args      []string  `json:"args"`
	CreatedAt time.Time `json:"created_at"`
}

// BoxReclaimResult represents the result of reclaiming generated boxes
type BoxReclaimResult struct {
	DeletedCount int      `json:"deletedCount"`
	DeletedFiles []string `json:"deletedFiles,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}
