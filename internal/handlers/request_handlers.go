package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ramservice/repair-quote-api/internal/intake"
)

// SubmitRequest is the handler for POST /api/submit. It prices the request
// at submission time and stores an immutable snapshot.
func (h *Handlers) SubmitRequest(c *gin.Context) {
	var sub intake.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.Intake.Submit(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, intake.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing contact.email"})
			return
		}
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"id":      receipt.ID,
		"price":   receipt.Price,
		"message": "Request received",
	})
}
