package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIPath is used when a controller does not advertise a path
const DefaultAPIPath = "/api/v1"

// Controller is a display controller found on the network
type Controller struct {
	// Name is the advertised service instance name
	Name string

	// Host is the mDNS hostname (e.g. "ledmatrix.local.")
	Host string

	IP   string
	Port int

	// Metadata holds the TXT record as key/value pairs
	Metadata map[string]string

	DiscoveredAt time.Time
}

func (c *Controller) String() string {
	return fmt.Sprintf("%s (%s) at %s", c.Name, c.Host, net.JoinHostPort(c.IP, strconv.Itoa(c.Port)))
}

// BaseURL returns the controller's API base URL
func (c *Controller) BaseURL() string {
	path := c.GetMetadata("path")
	if path == "" {
		path = DefaultAPIPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(c.IP, strconv.Itoa(c.Port)) + strings.TrimRight(path, "/")
}

// GetMetadata returns a TXT value, or "" when absent
func (c *Controller) GetMetadata(key string) string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata[key]
}
