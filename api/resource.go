package api

import (
	"context"
	"net/url"
)

// Resource is the standard CRUD surface of one collection endpoint.
type Resource[T any] struct {
	client     *Client
	collection string
}

func NewResource[T any](client *Client, collection string) Resource[T] {
	return Resource[T]{client: client, collection: collection}
}

func (r Resource[T]) Client() *Client {
	return r.client
}

func (r Resource[T]) List(ctx context.Context, query url.Values) (Page[T], error) {
	return List[T](ctx, r.client, r.collection, query)
}

func (r Resource[T]) Get(ctx context.Context, id ID) (*T, error) {
	var out T
	if err := r.client.Get(ctx, Detail(r.collection, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var out T
	if err := r.client.Post(ctx, r.collection, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the resource with PUT.
func (r Resource[T]) Update(ctx context.Context, id ID, body any) (*T, error) {
	var out T
	if err := r.client.Put(ctx, Detail(r.collection, id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Resource[T]) Delete(ctx context.Context, id ID) error {
	return r.client.Delete(ctx, Detail(r.collection, id), nil)
}

// GetAction fetches a named sub-resource such as /sdt/4/health/.
func (r Resource[T]) GetAction(ctx context.Context, id ID, action string, out any) error {
	return r.client.Get(ctx, Action(r.collection, id, action), nil, out)
}
