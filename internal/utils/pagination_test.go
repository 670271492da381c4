package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/validations"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	params, err := ParsePaginationParams(contextWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, &PaginationParams{Limit: 20, Offset: 0}, params)

	params, err = ParsePaginationParams(contextWithQuery("?limit=500&offset=40"))
	require.NoError(t, err)
	assert.Equal(t, &PaginationParams{Limit: 100, Offset: 40}, params)

	_, err = ParsePaginationParams(contextWithQuery("?limit=ten"))
	assert.EqualError(t, err, "limit must be an integer")
}

func TestGetOrgIDFromContext(t *testing.T) {
	c := contextWithQuery("")
	assert.Equal(t, "DEFAULT_ORG", GetOrgIDFromContext(c))

	SetContextValue(c, "orgID", "org-1")
	assert.Equal(t, "org-1", GetOrgIDFromContext(c))
}
