package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSONRequest(t *testing.T) {
	type payload struct {
		Size int `json:"size"`
	}

	var p payload
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"size": 9}`))
	require.NoError(t, DecodeJSONRequest(r, &p))
	require.Equal(t, 9, p.Size)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"size": 9, "extra": 1}`))
	require.Error(t, DecodeJSONRequest(r, &p))

	r = httptest.NewRequest("POST", "/", strings.NewReader("  \n"))
	require.ErrorIs(t, DecodeJSONRequest(r, &p), ErrEmptyBody)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"size":`))
	require.Error(t, DecodeJSONRequest(r, &p))
}
