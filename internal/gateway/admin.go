package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Admin operations use the service-role key and bypass row-level security
// on the gateway side. They must only be reachable through authenticated
// server-side paths, never from client input directly.

// AdminUpdatePassword sets a new password for the given subject.
func (c *Client) AdminUpdatePassword(ctx context.Context, userID, newPassword string) error {
	payload, err := json.Marshal(map[string]string{"password": newPassword})
	if err != nil {
		return fmt.Errorf("failed to encode password update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/auth/v1/admin/users/"+userID, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build admin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway admin call failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrUserNotFound, readErrorDetail(resp.Body))
	default:
		return fmt.Errorf("gateway password update returned status %d: %s",
			resp.StatusCode, readErrorDetail(resp.Body))
	}
}

// AdminDeleteUser removes the subject from the gateway.
func (c *Client) AdminDeleteUser(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/auth/v1/admin/users/"+userID, nil)
	if err != nil {
		return fmt.Errorf("failed to build admin request: %w", err)
	}
	req.Header.Set("apikey", c.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway admin call failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrUserNotFound, readErrorDetail(resp.Body))
	default:
		return fmt.Errorf("gateway user delete returned status %d: %s",
			resp.StatusCode, readErrorDetail(resp.Body))
	}
}
