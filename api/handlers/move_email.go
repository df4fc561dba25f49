package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/enum"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
	"github.com/mailfold/mailfold/internal/validation"
)

// MoveEmail copies an email into a target folder over IMAP.
func MoveEmail(imapService interfaces.IMAPService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "MoveEmail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var raw map[string]interface{}
		if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}

		missing := validation.MissingFields(raw, "host", "username", "password", "email_uid", "target_folder")
		if len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			})
			return
		}

		var request dto.MoveEmailRequest
		if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}
		request.ApplyDefaults()

		outcome := imapService.MoveEmail(ctx, request)

		switch outcome.Status {
		case enum.MoveSuccess:
			c.JSON(http.StatusOK, gin.H{
				"success":       true,
				"message":       outcome.Detail,
				"email_uid":     outcome.EmailUID,
				"source_folder": outcome.SourceFolder,
				"target_folder": outcome.TargetFolder,
			})
		case enum.MoveNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": outcome.Detail})
		default:
			log.Errorf("move failed (%s): %s", outcome.Status, outcome.Detail)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fmt.Sprintf("IMAP error: %s", outcome.Detail)})
		}
	}
}
