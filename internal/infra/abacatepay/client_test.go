package abacatepay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPixCharge_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pixQrCode/check", r.URL.Path)
		assert.Equal(t, "pix_char_123", r.URL.Query().Get("id"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"status":"PAID","expiresAt":"2026-10-18T12:00:00Z","metadata":{"externalId":"u1","plan":"PREMIUM"}},"error":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/", "key", srv.Client())
	charge, err := c.CheckPixCharge(context.Background(), "pix_char_123")
	require.NoError(t, err)
	assert.Equal(t, "pix_char_123", charge.ID)
	assert.Equal(t, StatusPaid, charge.Status)
	require.NotNil(t, charge.Metadata)
	assert.Equal(t, "u1", charge.Metadata.ExternalID)
	assert.Equal(t, "PREMIUM", charge.Metadata.Plan)
}

func TestCheckPixCharge_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"data":null,"error":"Pix QRCode not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", srv.Client())
	_, err := c.CheckPixCharge(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Pix QRCode not found", apiErr.Message)
}

func TestCheckPixCharge_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", srv.Client())
	_, err := c.CheckPixCharge(context.Background(), "x")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "upstream down")
}

func TestCheckPixCharge_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "key", nil)
	_, err := c.CheckPixCharge(context.Background(), "x")
	require.Error(t, err)
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("http://unused", "", nil)

	_, err := c.CheckPixCharge(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.CreatePixCharge(context.Background(), CreateChargeParams{Amount: 100})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreatePixCharge_SendsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pixQrCode/create", r.URL.Path)

		var params CreateChargeParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, int64(2990), params.Amount)
		assert.Equal(t, "u1", params.Metadata.ExternalID)
		assert.Equal(t, "PREMIUM", params.Metadata.Plan)

		_, _ = w.Write([]byte(`{"data":{"id":"pix_char_1","amount":2990,"status":"PENDING","brCode":"000201","brCodeBase64":"data:image/png;base64,AA=="},"error":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", srv.Client())
	charge, err := c.CreatePixCharge(context.Background(), CreateChargeParams{
		Amount:   2990,
		Metadata: Metadata{ExternalID: "u1", Plan: "PREMIUM"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pix_char_1", charge.ID)
	assert.Equal(t, StatusPending, charge.Status)
	assert.Equal(t, "000201", charge.BrCode)
}
