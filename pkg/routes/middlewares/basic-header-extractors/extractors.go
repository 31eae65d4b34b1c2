package headerextractors

import (
	"net/http"

	"github.com/M0rdr3d/lisk/pkg/helpers"
	"github.com/M0rdr3d/lisk/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func updateContextWithRequestID(ctx *gin.Context, headers http.Header) {
	reqID := headers.Get("x-request-id")
	if reqID != "" {
		ctx.Set(helpers.CtxRequestID, reqID)
	}
}

func updateContextWithSource(ctx *gin.Context, headers http.Header) {
	sourceHeader := headers.Get(models.HttpSourceHeader)
	if sourceHeader != "" {
		ctx.Set(helpers.CtxSource, sourceHeader)
	}
}

// RequestMetadataToContextMiddleware copies the request id and source headers
// into the gin context so that service loggers can pick them up.
func RequestMetadataToContextMiddleware(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		updateContextWithRequestID(c, c.Request.Header)
		updateContextWithSource(c, c.Request.Header)
		c.Next()
	}
}
