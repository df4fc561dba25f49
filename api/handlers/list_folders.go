package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mailfold/mailfold/dto"
	"github.com/mailfold/mailfold/interfaces"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
	"github.com/mailfold/mailfold/internal/validation"
)

// ListFolders returns every folder of the mailbox, both decoded names and the
// raw LIST lines.
func ListFolders(imapService interfaces.IMAPService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListFolders", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var raw map[string]interface{}
		if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}

		missing := validation.MissingFields(raw, "host", "username", "password")
		if len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			})
			return
		}

		var request dto.ListFoldersRequest
		if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Invalid JSON payload: %v", err)})
			return
		}
		request.ApplyDefaults()

		listing, err := imapService.ListFolders(ctx, request.MailboxAuth)
		if err != nil {
			tracing.TraceErr(span, err)
			log.Errorf("error listing folders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"folders":     listing.Folders,
			"raw_folders": listing.Raw,
		})
	}
}
