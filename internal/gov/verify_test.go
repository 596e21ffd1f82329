package gov

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPAN_Format(t *testing.T) {
	c := NewClient("", "")

	res, err := c.VerifyPAN(context.Background(), "abcde1234f")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.True(t, res.FormatValid)
	assert.Equal(t, "ABCDE1234F", res.Value)

	res, err = c.VerifyPAN(context.Background(), "ABC1234567")
	require.NoError(t, err)
	assert.False(t, res.FormatValid)
}

func TestVerifyGSTIN_Format(t *testing.T) {
	c := NewClient("", "")

	res, err := c.VerifyGSTIN(context.Background(), "27ABCDE1234F1Z5")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.True(t, res.FormatValid)

	res, err = c.VerifyGSTIN(context.Background(), "27ABCDE1234F1X5")
	require.NoError(t, err)
	assert.False(t, res.FormatValid)

	res, err = c.VerifyGSTIN(context.Background(), "27ABCDE1234F1Z")
	require.NoError(t, err)
	assert.False(t, res.FormatValid)
}

func TestVerifyITR_Format(t *testing.T) {
	c := NewClient("", "")

	res, err := c.VerifyITR(context.Background(), "123456789012345")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.True(t, res.FormatValid)

	res, err = c.VerifyITR(context.Background(), "12345")
	require.NoError(t, err)
	assert.False(t, res.FormatValid)
}

func TestVerifyPAN_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify/pan", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{"valid": true, "status": "active"})
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	res, err := c.VerifyPAN(context.Background(), "ABCDE1234F")
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, "active", res.Detail)
}
