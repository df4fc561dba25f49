package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pkg/errors"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	mailfolderrors "github.com/mailfold/mailfold/internal/errors"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
	"github.com/mailfold/mailfold/internal/validation"
)

// PipeMail classifies an inbound mail and files it into the matching folder.
// Validation and classification failures surface as 500, a failed downstream
// move as 501; only a completed move returns success.
func PipeMail(routerService interfaces.RouterService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "PipeMail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var raw map[string]interface{}
		if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}

		missing := validation.MissingFields(raw, "host", "username", "password", "email_uid", "text", "html_text", "subject")
		if len(missing) > 0 {
			err := errors.Wrapf(mailfolderrors.ErrMissingFields, "%s", strings.Join(missing, ", "))
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		var request dto.PipeMailRequest
		if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}

		err := routerService.Route(ctx, request)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		tracing.TraceErr(span, err)
		log.Errorf("error routing mail %s: %v", request.EmailUID, err)

		if errors.Is(err, mailfolderrors.ErrDownstreamMove) {
			c.JSON(http.StatusNotImplemented, gin.H{"success": false})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
