package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const maxErrorBody = 512

// Client talks to the expense REST resource rooted at baseURL
// (for example http://localhost:8080/api/expenses). It adds no timeout or
// retry of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]expense.Expense, error) {
	var body []expenseJSON
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &body); err != nil {
		return nil, &RepositoryError{Op: OpList, Err: err}
	}

	out := make([]expense.Expense, 0, len(body))

	for _, j := range body {
		e, err := j.toExpense()
		if err != nil {
			slog.Warn("skipping expense without id", "description", j.Description)
			continue
		}

		out = append(out, e)
	}

	return out, nil
}

func (c *Client) Create(ctx context.Context, d expense.Draft) (expense.Expense, error) {
	return c.send(ctx, OpCreate, http.MethodPost, c.baseURL, fromDraft(d))
}

// Update replaces every field of the expense identified by id.
func (c *Client) Update(ctx context.Context, id expense.ID, d expense.Draft) (expense.Expense, error) {
	req := fromDraft(d)
	req.ID = id

	return c.send(ctx, OpUpdate, http.MethodPut, c.itemURL(id), req)
}

func (c *Client) Delete(ctx context.Context, id expense.ID) error {
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return &RepositoryError{Op: OpDelete, Err: err}
	}

	return nil
}

func (c *Client) itemURL(id expense.ID) string {
	return c.baseURL + "/" + id.String()
}

func (c *Client) send(ctx context.Context, op Operation, method, url string, body expenseJSON) (expense.Expense, error) {
	var resp expenseJSON
	if err := c.do(ctx, method, url, body, &resp); err != nil {
		return expense.Expense{}, &RepositoryError{Op: op, Err: err}
	}

	e, err := resp.toExpense()
	if err != nil {
		return expense.Expense{}, &RepositoryError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return e, nil
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader

	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
