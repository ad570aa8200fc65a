package format

import (
	"strings"

	"github.com/fatih/color"

	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

// APIEndpoint represents an API endpoint
type APIEndpoint struct {
	Method      string
	Path        string
	Description string
}

var methodColors = map[string]color.Attribute{
	"GET":    color.FgGreen,
	"POST":   color.FgYellow,
	"PUT":    color.FgBlue,
	"DELETE": color.FgRed,
	"HEAD":   color.FgMagenta,
}

// FormatHTTPMethod returns a colored and bold HTTP method string
func FormatHTTPMethod(method string) string {
	if fg, ok := methodColors[method]; ok {
		return color.New(color.Bold, fg).Sprint(method)
	}
	return color.New(color.Bold).Sprint(method)
}

// FormatCommand renders a tool invocation for the startup banner
func FormatCommand(command []string) string {
	if len(command) == 0 {
		return ""
	}
	head := color.New(color.Bold, color.FgCyan).Sprint(command[0])
	if len(command) == 1 {
		return head
	}
	return head + " " + strings.Join(command[1:], " ")
}

// LogAPIEndpoints logs a header and a list of API endpoints
func LogAPIEndpoints(log *logger.Logger, endpoints []APIEndpoint) {
	log.Info("API endpoints:")
	for _, endpoint := range endpoints {
		// Tabs keep columns aligned regardless of ANSI codes
		log.Info("  %s\t\t%s\t\t%s",
			FormatHTTPMethod(endpoint.Method),
			endpoint.Path,
			endpoint.Description,
		)
	}
}
