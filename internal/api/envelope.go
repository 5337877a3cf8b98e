package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/nyeweb/nyeweb-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the shared JSON
// envelope so huma operations and the plain handlers speak one format.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return response.Envelope{
			Success: false,
			Error:   apiErr.Message,
			Data:    apiErr.Details,
		}, nil
	}

	success := len(status) > 0 && (status[0] == '2' || status[0] == '3')
	return response.Envelope{
		Success: success,
		Data:    v,
	}, nil
}
