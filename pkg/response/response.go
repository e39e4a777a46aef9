package response

import (
	"log"
	"net/http"
	"strings"

	"github.com/frostlabs-io/avaxboard/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetWalletAddress retrieves the authenticated wallet address from the context
func GetWalletAddress(c *gin.Context) (string, error) {
	addr, exists := c.Get("wallet_address")
	if !exists {
		return "", apperror.ErrUnauthorized
	}

	address, ok := addr.(string)
	if !ok || address == "" {
		return "", apperror.ErrUnauthorized
	}

	return strings.ToLower(address), nil
}

// Error standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, never leak their detail to the caller
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// NoStore marks the response as uncacheable. Vote responses must always
// reflect the current ledger state.
func NoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
