package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/rpggio/bizpilot/internal/resource"
)

// Collection is the remote side of one REST collection:
// GET/POST /{name} and PUT/DELETE /{name}/{id}.
type Collection[T resource.Entity, D any, P any] struct {
	client *Client
	name   string
}

// NewCollection binds a collection path to a client.
func NewCollection[T resource.Entity, D any, P any](client *Client, name string) *Collection[T, D, P] {
	return &Collection[T, D, P]{client: client, name: name}
}

func (c *Collection[T, D, P]) List(ctx context.Context) ([]T, error) {
	resp, err := c.client.do(ctx, "list "+c.name, http.MethodGet, c.name, nil)
	if err != nil {
		return nil, err
	}
	switch resp.jsonKind() {
	case 0, 'n':
		return []T{}, nil
	case '[':
	default:
		return nil, c.decodeError("list", resp, errors.New("expected a JSON array"))
	}
	var items []T
	if err := json.Unmarshal(resp.body, &items); err != nil {
		return nil, c.decodeError("list", resp, err)
	}
	return items, nil
}

func (c *Collection[T, D, P]) Create(ctx context.Context, draft D) (*T, error) {
	resp, err := c.client.do(ctx, "create "+c.name, http.MethodPost, c.name, draft)
	if err != nil {
		return nil, err
	}
	return c.entity("create", resp)
}

func (c *Collection[T, D, P]) Update(ctx context.Context, id resource.ID, patch P) (*T, error) {
	target, err := c.itemPath(id)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.do(ctx, "update "+c.name, http.MethodPut, target, patch)
	if err != nil {
		return nil, err
	}
	return c.entity("update", resp)
}

// Delete treats 404 as already deleted.
func (c *Collection[T, D, P]) Delete(ctx context.Context, id resource.ID) error {
	target, err := c.itemPath(id)
	if err != nil {
		return err
	}
	_, err = c.client.do(ctx, "delete "+c.name, http.MethodDelete, target, nil)
	var netErr *resource.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
		c.client.logger.Debug("delete of missing entity", "resource", c.name, "id", id)
		return nil
	}
	return err
}

// itemPath returns {name}/{id}. Ids that path cleaning would fold into the
// collection or its parent are rejected before any request is sent.
func (c *Collection[T, D, P]) itemPath(id resource.ID) (string, error) {
	segment := url.PathEscape(id.String())
	if path.Base("/"+segment) != segment {
		verr := &resource.ValidationError{Resource: c.name}
		verr.Add("id", fmt.Sprintf("%q is not a valid id", id.String()))
		return "", verr
	}
	return c.name + "/" + segment, nil
}

// entity decodes an entity body. Acknowledgements without one, or with an
// object lacking an id, yield nil.
func (c *Collection[T, D, P]) entity(op string, resp response) (*T, error) {
	if resp.jsonKind() != '{' {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, c.decodeError(op, resp, err)
	}
	if out.EntityID() == "" {
		return nil, nil
	}
	return &out, nil
}

func (c *Collection[T, D, P]) decodeError(op string, resp response, err error) error {
	return &resource.NetworkError{
		Op:         op + " " + c.name,
		StatusCode: resp.status,
		Message:    "unexpected response body",
		Err:        err,
	}
}
