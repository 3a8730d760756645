package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/ledmatrix/onboard/internal/logging"
)

const (
	// ServiceType is what display controllers advertise
	ServiceType = "_ledmatrix._tcp"

	ServiceDomain      = "local."
	DefaultScanTimeout = 3 * time.Second
	DefaultPort        = 8080
)

// ErrNoController is returned by First when nothing answered in time
var ErrNoController = errors.New("no display controller found")

// Scanner browses mDNS for display controllers
type Scanner struct {
	Service string
	Domain  string
	Timeout time.Duration
}

// NewScanner creates a scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Service: ServiceType,
		Domain:  ServiceDomain,
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every controller that answers within the timeout
func (s *Scanner) Scan(ctx context.Context) ([]*Controller, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu          sync.Mutex
		controllers = make([]*Controller, 0)
		seen        = make(map[string]bool)
	)

	err := s.browse(ctx, func(c *Controller) bool {
		mu.Lock()
		defer mu.Unlock()
		key := c.BaseURL()
		if !seen[key] {
			seen[key] = true
			controllers = append(controllers, c)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Controller, len(controllers))
	copy(out, controllers)
	return out, nil
}

// First returns the first controller that answers
func (s *Scanner) First(ctx context.Context) (*Controller, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Controller, 1)
	err := s.browse(ctx, func(c *Controller) bool {
		select {
		case found <- c:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case c := <-found:
		return c, nil
	case <-ctx.Done():
		select {
		case c := <-found:
			return c, nil
		default:
		}
		return nil, fmt.Errorf("%w within %s", ErrNoController, s.Timeout)
	}
}

// browse feeds parsed controllers to fn until ctx ends or fn returns false
func (s *Scanner) browse(ctx context.Context, fn func(*Controller) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				c := parseServiceEntry(entry)
				if c == nil {
					continue
				}
				logging.Debug("controller discovered", zap.String("name", c.Name), zap.String("url", c.BaseURL()))
				if !fn(c) {
					return
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, s.Service, s.Domain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

// parseServiceEntry converts a zeroconf entry, or returns nil when it has
// no usable address
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Controller {
	if entry == nil {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	name := entry.Instance
	if name == "" {
		name = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Controller{
		Name:         name,
		Host:         entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
