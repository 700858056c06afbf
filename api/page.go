package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Page is one normalized page of a list endpoint. Collections come back either
// as a bare array or as a {results, count, next, previous} envelope.
type Page[T any] struct {
	Items          []T
	Count          int
	NextCursor     string
	PreviousCursor string
}

func (p Page[T]) HasNext() bool {
	return p.NextCursor != ""
}

type pageEnvelope[T any] struct {
	Results  []T    `json:"results"`
	Count    *int   `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
}

// DecodePage normalizes either collection shape into a Page.
func DecodePage[T any](body []byte) (Page[T], error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return Page[T]{}, nil
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decoding list: %w", err)
		}
		return Page[T]{Items: items, Count: len(items)}, nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return Page[T]{}, fmt.Errorf("decoding page: %w", err)
	}
	page := Page[T]{
		Items:          env.Results,
		Count:          len(env.Results),
		NextCursor:     cursorFrom(env.Next),
		PreviousCursor: cursorFrom(env.Previous),
	}
	if env.Count != nil {
		page.Count = *env.Count
	}
	return page, nil
}

// cursorFrom reduces a next/previous link to the value that should be sent
// back as the page or cursor query parameter.
func cursorFrom(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	if c := q.Get("cursor"); c != "" {
		return c
	}
	if p := q.Get("page"); p != "" {
		return p
	}
	return link
}

// List fetches one page of a collection endpoint.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return Page[T]{}, err
	}
	return DecodePage[T](raw)
}

// ListAll follows cursors until the collection is exhausted or limit items
// have been read. A limit of zero means no limit.
func ListAll[T any](ctx context.Context, c *Client, path string, query url.Values, limit int) ([]T, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}

	var all []T
	for {
		page, err := List[T](ctx, c, path, q)
		if err != nil {
			return all, err
		}
		all = append(all, page.Items...)
		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}
		if !page.HasNext() || len(page.Items) == 0 {
			return all, nil
		}
		q.Set("page", page.NextCursor)
	}
}
