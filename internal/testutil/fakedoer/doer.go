// Package fakedoer provides an in-memory httpclient.Doer that records the
// descriptors it receives.
package fakedoer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/secondhand/console/internal/infrastructure/httpclient"
)

// Doer records requests and answers from canned data.
type Doer struct {
	mu        sync.Mutex
	requests  []httpclient.Request
	responses map[string]json.RawMessage
	errs      map[string]error
	err       error
}

// New creates a Doer that answers every request with null data.
func New() *Doer {
	return &Doer{
		responses: make(map[string]json.RawMessage),
		errs:      make(map[string]error),
	}
}

// Do implements httpclient.Doer.
func (d *Doer) Do(_ context.Context, req httpclient.Request) (json.RawMessage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests = append(d.requests, req)
	key := req.Method + " " + req.Path
	if err, ok := d.errs[key]; ok {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}
	if data, ok := d.responses[key]; ok {
		return data, nil
	}
	return json.RawMessage("null"), nil
}

// Respond sets the data returned for method and path.
func (d *Doer) Respond(method, path string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(fmt.Sprintf("fakedoer: encoding response: %v", err))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[method+" "+path] = raw
}

// FailOn makes requests to method and path fail with err.
func (d *Doer) FailOn(method, path string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs[method+" "+path] = err
}

// FailAll makes every request without a specific failure fail with err.
func (d *Doer) FailAll(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Requests returns every recorded descriptor.
func (d *Doer) Requests() []httpclient.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]httpclient.Request(nil), d.requests...)
}

// Last returns the most recent descriptor.
func (d *Doer) Last() httpclient.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return httpclient.Request{}
	}
	return d.requests[len(d.requests)-1]
}
