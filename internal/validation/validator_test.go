package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/validation"
)

type toolRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	URL   string `json:"url" validate:"required,http_url"`
}

func TestValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(toolRequest{Title: "JSON Formatter", URL: "https://example.com/tool"})
	assert.NoError(t, err)
}

func TestValidateErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(toolRequest{URL: "not a url"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	assert.Equal(t, "is required", domainErr.Details["title"])
	assert.Equal(t, "must be a valid http(s) URL", domainErr.Details["url"])
}

func TestVar(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("2026-01-15", "datetime=2006-01-02"))
	assert.Error(t, v.Var("15/01/2026", "datetime=2006-01-02"))
}
