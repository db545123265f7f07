package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/familylane/memory-lane/internal/api"
	"github.com/familylane/memory-lane/internal/model"
	"github.com/familylane/memory-lane/internal/timeline"
)

// apiClient talks to a running memory-lane service.
type apiClient struct {
	client *resty.Client
}

func newAPIClient(base string) *apiClient {
	c := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return &apiClient{client: c}
}

type listResponse struct {
	Memories []*model.Memory `json:"memories"`
	Count    int             `json:"count"`
}

func (c *apiClient) Timeline(ctx context.Context, view, date string) (*api.TimelineResponse, []byte, error) {
	var out api.TimelineResponse
	req := c.client.R().SetContext(ctx).SetResult(&out).SetQueryParam("view", view)
	if date != "" {
		req.SetQueryParam("date", date)
	}
	resp, err := req.Get("/api/timeline")
	if err := checkResponse(resp, err); err != nil {
		return nil, nil, err
	}
	return &out, resp.Body(), nil
}

func (c *apiClient) Stats(ctx context.Context) (*timeline.Stats, []byte, error) {
	var out timeline.Stats
	resp, err := c.client.R().SetContext(ctx).SetResult(&out).Get("/api/stats")
	if err := checkResponse(resp, err); err != nil {
		return nil, nil, err
	}
	return &out, resp.Body(), nil
}

func (c *apiClient) List(ctx context.Context) (*listResponse, []byte, error) {
	var out listResponse
	resp, err := c.client.R().SetContext(ctx).SetResult(&out).Get("/api/memories")
	if err := checkResponse(resp, err); err != nil {
		return nil, nil, err
	}
	return &out, resp.Body(), nil
}

func (c *apiClient) Get(ctx context.Context, id string) (*model.Memory, []byte, error) {
	var out model.Memory
	resp, err := c.client.R().SetContext(ctx).SetResult(&out).SetPathParam("id", id).Get("/api/memories/{id}")
	if err := checkResponse(resp, err); err != nil {
		return nil, nil, err
	}
	return &out, resp.Body(), nil
}

func (c *apiClient) Delete(ctx context.Context, id string) error {
	resp, err := c.client.R().SetContext(ctx).SetPathParam("id", id).Delete("/api/memories/{id}")
	return checkResponse(resp, err)
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
