// Package onboarding holds the selection state machine behind the
// onboarding form: stop search text and its debounced value, the stop area
// and direction candidates, the user's picks, three busy flags and a single
// status message.
//
// State is not safe for concurrent use. The terminal UI owns one State and
// mutates it only from its Update loop; Runner wraps one behind a mutex for
// headless callers.
//
// Transitions never perform I/O. Those that start an operation return a
// *Request describing the call to make; its result comes back through
// Apply (or the per-operation Apply methods) tagged with the request's
// sequence number, and results of superseded requests are discarded.
//
//	ticket := s.Type("Musso")
//	// ... ticket.Delay later, if nothing else was typed:
//	if req := s.Settle(ticket.Version); req != nil {
//	    stops, err := client.SearchStopAreas(ctx, req.Query)
//	    s.ApplySearch(req.Seq, stops, err)
//	}
package onboarding
