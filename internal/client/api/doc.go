// Package api talks to the remote truck-stops directory over HTTP/JSON.
// It exposes a narrow Client interface so the stores can be tested with
// fakes, plus the concrete HTTPClient implementation.
package api
