package common

import (
	"fmt"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"

	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

// HeaderRequestID carries the id assigned to each request
const HeaderRequestID = "X-Request-ID"

// RequestLogger returns a container filter that tags each request with an
// id and logs the request line and response status.
func RequestLogger(log *logger.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		id := req.Request.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		resp.Header().Set(HeaderRequestID, id)

		url := req.Request.URL.Path
		if req.Request.URL.RawQuery != "" {
			url += "?" + req.Request.URL.RawQuery
		}
		log.Info("[%s] %s %s %s", id, req.Request.Method, url, req.Request.Proto)

		// Print headers in debug mode
		if log.IsDebugEnabled() && len(req.Request.Header) > 0 {
			headers := make([]string, 0, len(req.Request.Header))
			for name, values := range req.Request.Header {
				headers = append(headers, fmt.Sprintf("%s: %s", name, values[0]))
			}
			log.Debug("[%s] Headers: %s", id, strings.Join(headers, ", "))
		}

		chain.ProcessFilter(req, resp)

		log.Debug("[%s] Response status: %d", id, resp.StatusCode())
	}
}
