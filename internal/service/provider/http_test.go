package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_SendEmail(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/notifications/email", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tpl-1", body["template_id"])
		assert.Equal(t, "jane@example.com", body["email_address"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"n-123"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	resp, err := c.SendEmail(context.Background(), "tpl-1", "jane@example.com", map[string]string{"name": "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "n-123", resp.NotificationID)
}

func TestHTTPClient_SendLetter_AddressInPersonalisation(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Personalisation map[string]string `json:"personalisation"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1 High St", body.Personalisation["address_line_1"])
		assert.Equal(t, "AB1 2CD", body.Personalisation["postcode"])
		_, _ = w.Write([]byte(`{"id":"n-456"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL})
	resp, err := c.SendLetter(context.Background(), "tpl-2",
		domain.Address{Line1: "1 High St", Postcode: "AB1 2CD"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "n-456", resp.NotificationID)
}

func TestHTTPClient_ErrorClassification(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		status    int
		wantFatal bool
	}{
		{name: "400 请求非法不重试", status: http.StatusBadRequest, wantFatal: true},
		{name: "403 凭证失效不重试", status: http.StatusForbidden, wantFatal: true},
		{name: "429 限流可重试", status: http.StatusTooManyRequests, wantFatal: false},
		{name: "500 服务端故障可重试", status: http.StatusInternalServerError, wantFatal: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"errors":["boom"]}`))
			}))
			defer srv.Close()

			c := NewHTTPClient(Config{BaseURL: srv.URL})
			_, err := c.SendSMS(context.Background(), "tpl-3", "07700900000", nil)
			require.Error(t, err)
			assert.Equal(t, tc.wantFatal, IsFatal(err))

			var ce *ClientError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.status, ce.StatusCode)
		})
	}
}

func TestHTTPClient_NetworkError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL})
	_, err := c.SendEmail(context.Background(), "tpl-4", "jane@example.com", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrProviderServer)
	assert.False(t, IsFatal(err))
}
