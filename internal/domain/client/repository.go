package client

import "context"

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint64) (*Client, error)
	GetByClientID(ctx context.Context, clientID string) (*Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Client, error)
	// List orders by last name, first name; an empty status means all.
	List(ctx context.Context, status Status) ([]Client, error)
	Save(ctx context.Context, c *Client) error
}
