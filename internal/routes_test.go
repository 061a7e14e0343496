package internal

import (
	"testing"

	"aad/internal/controllers"
	"aad/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRoutes(t *testing.T) {
	apiController := controllers.NewApiController(&testutil.MockLogger{}, nil, testutil.NewMockCache())

	router := InitRoutes(apiController)
	routes := router.GetRoutes()

	require.Len(t, routes, 1)
	assert.Equal(t, "/attendance", routes[0].Url)
	assert.NotNil(t, routes[0].Handler)
}
