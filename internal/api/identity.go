package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// Session and token handling live at the gateway, which injects the verified
// caller identity as an X-User-ID header. Handlers that need an identity
// declare the header on their input struct and pass it through requireUser.

// requireUser validates a gateway-injected user ID header.
func requireUser(xUserID string) (string, error) {
	if xUserID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return xUserID, nil
}
