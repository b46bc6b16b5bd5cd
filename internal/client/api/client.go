// Package api is the HTTP client for the taskhub REST API. It decodes the
// server's {"message": ...} bodies so the caller can show them verbatim, and
// reports a 401 on an authenticated call as ErrUnauthorized so the app can
// end the session instead of displaying an error. A 401 on login itself is
// just a rejected credential and surfaces the server message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
)

var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	body := dto.RegisterDTO{Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/auth/register", "", body, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (dto.SessionResponse, error) {
	var out dto.SessionResponse
	body := dto.LoginDTO{Email: email, Password: password}
	err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out)
	return out, err
}

func (c *Client) Refresh(ctx context.Context, token string) (dto.SessionResponse, error) {
	var out dto.SessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", token, nil, &out)
	return out, err
}

func (c *Client) Verify(ctx context.Context, token string) (dto.UserResponse, error) {
	var out struct {
		User dto.UserResponse `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/verify", token, nil, &out)
	return out.User, err
}

func (c *Client) ListTodos(ctx context.Context, token, statusFilter string) ([]dto.TodoResponse, error) {
	path := "/todos"
	if statusFilter != "" {
		q := url.Values{"status": {statusFilter}}
		path += "?" + q.Encode()
	}
	var out []dto.TodoResponse
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *Client) CreateTodo(ctx context.Context, token string, in dto.CreateTodoDTO) (dto.TodoResponse, error) {
	var out dto.TodoResponse
	err := c.do(ctx, http.MethodPost, "/todos", token, in, &out)
	return out, err
}

func (c *Client) UpdateTodo(ctx context.Context, token, id string, in dto.UpdateTodoDTO) (dto.TodoResponse, error) {
	var out dto.TodoResponse
	err := c.do(ctx, http.MethodPut, "/todos/"+id, token, in, &out)
	return out, err
}

func (c *Client) DeleteTodo(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return errors.New(serverMessage(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage pulls the message out of an error body, with a generic
// fallback when the body is not what we expect.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "something went wrong, please try again"
}
