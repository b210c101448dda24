package backendclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *BackendClient {
	return NewClient(config.Backend{
		URL:       url + "/",
		APIKey:    "anon-key",
		RateLimit: 100,
		RateBurst: 10,
		Timeout:   time.Second,
	})
}

func TestCall_Sucesso(t *testing.T) {
	var gotPath, gotMethod, gotAPIKey, gotAuth, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"revenue_mtd":1000}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	payload, err := client.Call(context.Background(), "get_business_pulse", map[string]any{"p_tenant_id": "t1"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"revenue_mtd":1000}`, string(payload))
	assert.Equal(t, "/rest/v1/rpc/get_business_pulse", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.JSONEq(t, `{"p_tenant_id":"t1"}`, gotBody)
}

func TestCall_ErroDoBackend(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "erro estruturado",
			status:      http.StatusBadRequest,
			body:        `{"code":"P0001","message":"amount must be positive","details":null,"hint":null}`,
			wantCode:    "P0001",
			wantMessage: "amount must be positive",
		},
		{
			name:        "corpo em texto",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable\n",
			wantMessage: "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Call(context.Background(), "set_monthly_target", nil)

			var rpcErr *RPCError
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, tt.status, rpcErr.Status)
			assert.Equal(t, "set_monthly_target", rpcErr.Procedure)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
			assert.Equal(t, tt.wantMessage, rpcErr.Message)
		})
	}
}

func TestExec_DescartaCorpo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Exec(context.Background(), "set_yearly_goal", map[string]any{"p_year": 2025})

	assert.NoError(t, err)
}

func TestCall_ContextoCancelado(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("requisição não deveria ser enviada")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Call(ctx, "get_business_pulse", nil)

	assert.Error(t, err)
}

func TestNewClient_Padroes(t *testing.T) {
	client := NewClient(config.Backend{URL: "http://backend", RateLimit: 5})

	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, 1, client.limiter.Burst())
	assert.Equal(t, "http://backend", client.baseURL)
}
