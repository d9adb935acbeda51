package recordstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/resale-ledger-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorBody limita quanto do corpo de uma resposta de erro vai para a mensagem
const maxErrorBody = 512

// Client fala com um serviço relacional gerenciado exposto no dialeto PostgREST.
// Cada tabela vira um recurso em /rest/v1/<tabela>.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
}

func NewClient(cfg config.RecordStore) (*Client, error) {
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao analisar a URL do record store")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// Insert grava um registro e decodifica a representação devolvida pelo serviço em out
func (c *Client) Insert(ctx context.Context, table string, record any, out any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "erro ao serializar registro de %s", table)
	}

	return c.do(ctx, http.MethodPost, table, nil, body, out)
}

// Select lista a tabela inteira ordenada por um único campo
func (c *Client) Select(ctx context.Context, table, orderBy string, out any) error {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", orderBy)

	return c.do(ctx, http.MethodGet, table, query, nil, out)
}

// SelectByID busca os registros com o id informado
func (c *Client) SelectByID(ctx context.Context, table, id string, out any) error {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)

	return c.do(ctx, http.MethodGet, table, query, nil, out)
}

// Delete remove pelo id e decodifica as linhas removidas em out
func (c *Client) Delete(ctx context.Context, table, id string, out any) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	return c.do(ctx, http.MethodDelete, table, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body []byte, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/rest/v1", table)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodDelete {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "erro ao executar %s %s", method, table)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("record store respondeu %s em %s %s: %s", resp.Status, method, table, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "erro ao decodificar resposta de %s", table)
	}

	return nil
}
