//go:build !gcloud

package config

import (
	"fmt"
	"net/url"
)

// Validate accepts an empty PRIMIND_TASKS_URL, which turns event
// notifications off.
func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL == "" {
		return nil
	}

	u, err := url.Parse(c.PrimindTasksURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTasksURL, c.PrimindTasksURL)
	}
	return nil
}
