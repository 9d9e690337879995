package restapi

import (
	"context"
	"net/http"

	"github.com/Rea1521/mahlangu-capital-bank/internal/session"
)

type credentialsJSON struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterParams is the new-customer payload passed through to the backend.
type RegisterParams struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Login authenticates against the backend and returns the customer record
// the portal caches for the session.
func (c *Client) Login(ctx context.Context, email, password string) (session.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", credentialsJSON{Email: email, Password: password})
	if err != nil {
		return session.Customer{}, err
	}

	var customer session.Customer
	if err := c.doJSON(req, &customer); err != nil {
		return session.Customer{}, err
	}
	return customer, nil
}

// Register creates a customer and returns the stored record.
func (c *Client) Register(ctx context.Context, params RegisterParams) (session.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", params)
	if err != nil {
		return session.Customer{}, err
	}

	var customer session.Customer
	if err := c.doJSON(req, &customer); err != nil {
		return session.Customer{}, err
	}
	return customer, nil
}

// Customer fetches the current profile record.
func (c *Client) Customer(ctx context.Context, customerID string) (session.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/customers/"+customerID, nil)
	if err != nil {
		return session.Customer{}, err
	}

	var customer session.Customer
	if err := c.doJSON(req, &customer); err != nil {
		return session.Customer{}, err
	}
	return customer, nil
}
