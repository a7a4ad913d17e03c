package restclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

func listQuery(f entity.Filters, page, limit int) url.Values {
	q := url.Values{}
	for k, v := range f {
		if v != "" {
			q.Set(k, v)
		}
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// Resource operaciones CRUD uniformes sobre un recurso REST.
// Respuestas: listado {data, pagination}; el resto {data: T}.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource construye el acceso a un recurso bajo path (ej. "customer").
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// List GET /{path}?filters&page&limit.
func (r *Resource[T]) List(ctx context.Context, filters entity.Filters, page, limit int) (*entity.ListPage[T], error) {
	var out entity.ListPage[T]
	if err := r.c.Do(ctx, http.MethodGet, r.path, listQuery(filters, page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get GET /{path}/{id}.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var out envelope[T]
	if err := r.c.Do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Create POST /{path}.
func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var out envelope[T]
	if err := r.c.Do(ctx, http.MethodPost, r.path, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Update PUT /{path}/{id}.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	var out envelope[T]
	if err := r.c.Do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), nil, payload, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Delete DELETE /{path}/{id}.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}
