// Package discovery finds LED matrix display controllers on the local
// network with multicast DNS.
//
// Controllers advertise the "_ledmatrix._tcp" service. The TXT record may
// carry a "path" key with the API prefix (default "/api/v1"):
//
//	scanner := discovery.NewScanner()
//	controllers, err := scanner.Scan(ctx)
//	for _, c := range controllers {
//	    fmt.Println(c.Name, c.BaseURL())
//	}
//
// Discovery needs multicast on the interface and UDP port 5353 open.
package discovery
