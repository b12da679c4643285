package apiclient

import (
	"context"
	"fmt"
	"net/url"
)

// ============================================================================
// Generic API Client Helpers
// ============================================================================
//
// These helpers reduce repetitive HTTP boilerplate across the resource files.
// They are unexported (package-internal).

// getResource performs a GET request to the given path and decodes the response
// body into a value of type T.
//
// Example:
//
//	exp, err := getResource[Experimenter](ctx, c, "/api/v1/experimenters/42")
func getResource[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var result T
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// listResources performs a GET request to the given path and decodes the response
// body into a slice of type T.
func listResources[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var results []T
	if err := c.get(ctx, path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// createResource performs a POST request with body and decodes the response
// into a value of type T.
func createResource[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var result T
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// resourcePath builds a resource path from a template, escaping every string
// argument as a single path segment.
//
// Example:
//
//	path := resourcePath("/api/v1/groups/by-name/%s", "lab a")
func resourcePath(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			escaped[i] = url.PathEscape(s)
			continue
		}
		escaped[i] = a
	}
	return fmt.Sprintf(format, escaped...)
}
