package backendclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	rpcPath        = "/rest/v1/rpc/"
	defaultTimeout = 30 * time.Second
)

// RPCError é a resposta de erro do backend para uma chamada de procedimento
type RPCError struct {
	Status    int    `json:"-"`
	Procedure string `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details"`
	Hint      string `json:"hint"`
}

func (e *RPCError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Procedure, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Procedure, e.Status, e.Message)
}

// BackendClient chama os procedimentos do backend hospedado por HTTP
type BackendClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewClient(cfg config.Backend) *BackendClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &BackendClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
	}
}

// Call executa POST {url}/rest/v1/rpc/<procedure> e devolve o corpo da resposta
func (c *BackendClient) Call(ctx context.Context, procedure string, params map[string]any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "erro aguardando limite de requisições")
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar parâmetros")
	}

	url := c.baseURL + rpcPath + procedure

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	startTime := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("procedure", procedure).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	logrus.WithFields(logrus.Fields{
		"procedure": procedure,
		"status":    resp.StatusCode,
		"duration":  time.Since(startTime).String(),
	}).Debug("Procedimento do backend executado")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, parseRPCError(procedure, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// Exec executa o procedimento descartando o corpo da resposta
func (c *BackendClient) Exec(ctx context.Context, procedure string, params map[string]any) error {
	_, err := c.Call(ctx, procedure, params)
	return err
}

func parseRPCError(procedure string, status int, body []byte) *RPCError {
	rpcErr := &RPCError{}
	if err := json.Unmarshal(body, rpcErr); err != nil {
		rpcErr.Message = strings.TrimSpace(string(body))
	}

	rpcErr.Status = status
	rpcErr.Procedure = procedure

	return rpcErr
}
