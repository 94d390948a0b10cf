//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/custodia-cloud/custodia/core"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

// CreateRequestBody is the wire shape of a request submission.
type CreateRequestBody struct {
	Operation        core.Operation `json:"operation"`
	Title            string         `json:"title"`
	Summary          string         `json:"summary,omitempty"`
	ExecutionPlan    string         `json:"executionPlan,omitempty"`
	ExecutionDT      *time.Time     `json:"executionDT,omitempty"`
	DeduplicationKey *string        `json:"deduplicationKey,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
}

type Client interface {
	CreateRequest(ctx context.Context, host string, body CreateRequestBody) (core.Request, error)
	GetRequest(ctx context.Context, host, id string) (core.Request, error)
	ListRequests(ctx context.Context, host, query string) ([]core.Request, error)
	ApproveRequest(ctx context.Context, host, id string, decision core.Decision, reason string) (core.Request, error)
	CancelRequest(ctx context.Context, host, id, reason string) (core.Request, error)
	CompleteRequest(ctx context.Context, host, id string, outcome core.ExecutionOutcome, reason string) (core.Request, error)
	GetActor(ctx context.Context, host, id string) (core.Actor, error)
	GetPolicy(ctx context.Context, host, id string) (core.Policy, error)
}

type client struct {
	privatekey string
	address    string
}

// NewClient creates an API client that signs every call with the given
// secp256k1 private key.
func NewClient(privatekey string) (Client, error) {
	address, err := core.PrivKeyToAddr(privatekey, core.CredentialHRP)
	if err != nil {
		return nil, err
	}
	return &client{
		privatekey: privatekey,
		address:    address,
	}, nil
}

func (c *client) sign(req *http.Request, method, path string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	message := []byte(timestamp + ":" + method + ":" + path)
	signature, err := core.SignBytes(message, c.privatekey)
	if err != nil {
		return err
	}

	req.Header.Set("cu-credential", c.address)
	req.Header.Set("cu-signature", hex.EncodeToString(signature))
	req.Header.Set("cu-timestamp", timestamp)
	return nil
}

func do[T any](ctx context.Context, c *client, method, host, path string, payload any) (T, error) {
	var result T

	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return result, err
		}
		reader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, "https://"+host+path, reader)
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.sign(req, method, path); err != nil {
		return result, err
	}

	httpClient := new(http.Client)
	httpClient.Timeout = defaultTimeout
	httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	resp, err := httpClient.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var response core.ResponseBase[T]
	if err := json.Unmarshal(body, &response); err != nil {
		return result, err
	}

	if response.Status != "ok" {
		return result, fmt.Errorf("request failed: %s %s: %s", method, path, response.Error)
	}

	return response.Content, nil
}

func (c *client) CreateRequest(ctx context.Context, host string, body CreateRequestBody) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.CreateRequest")
	defer span.End()

	return do[core.Request](ctx, c, http.MethodPost, host, "/request", body)
}

func (c *client) GetRequest(ctx context.Context, host, id string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.GetRequest")
	defer span.End()

	return do[core.Request](ctx, c, http.MethodGet, host, "/request/"+id, nil)
}

func (c *client) ListRequests(ctx context.Context, host, query string) ([]core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.ListRequests")
	defer span.End()

	path := "/requests"
	if query != "" {
		path += "?" + query
	}
	return do[[]core.Request](ctx, c, http.MethodGet, host, path, nil)
}

func (c *client) ApproveRequest(ctx context.Context, host, id string, decision core.Decision, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.ApproveRequest")
	defer span.End()

	body := map[string]string{
		"decision": string(decision),
		"reason":   reason,
	}
	return do[core.Request](ctx, c, http.MethodPost, host, "/request/"+id+"/approve", body)
}

func (c *client) CancelRequest(ctx context.Context, host, id, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.CancelRequest")
	defer span.End()

	body := map[string]string{
		"reason": reason,
	}
	return do[core.Request](ctx, c, http.MethodDelete, host, "/request/"+id, body)
}

func (c *client) CompleteRequest(ctx context.Context, host, id string, outcome core.ExecutionOutcome, reason string) (core.Request, error) {
	ctx, span := tracer.Start(ctx, "Client.CompleteRequest")
	defer span.End()

	body := map[string]string{
		"outcome": string(outcome),
		"reason":  reason,
	}
	return do[core.Request](ctx, c, http.MethodPost, host, "/request/"+id+"/completion", body)
}

func (c *client) GetActor(ctx context.Context, host, id string) (core.Actor, error) {
	ctx, span := tracer.Start(ctx, "Client.GetActor")
	defer span.End()

	return do[core.Actor](ctx, c, http.MethodGet, host, "/actor/"+id, nil)
}

func (c *client) GetPolicy(ctx context.Context, host, id string) (core.Policy, error) {
	ctx, span := tracer.Start(ctx, "Client.GetPolicy")
	defer span.End()

	return do[core.Policy](ctx, c, http.MethodGet, host, "/policy/"+id, nil)
}
