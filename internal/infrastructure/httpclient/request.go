package httpclient

import "strconv"

// Request describes one backend call. Feature clients build it and hand it
// to the pipeline unchanged; the pipeline never writes to it.
type Request struct {
	Method string
	Path   string
	Params Params
	Body   any
}

// Params holds query parameters. Optional values are only set when present,
// so an absent filter never reaches the wire as an empty or null value.
type Params map[string]string

// Set stores v under key.
func (p Params) Set(key, v string) Params {
	p[key] = v
	return p
}

// Int stores v under key.
func (p Params) Int(key string, v int) Params {
	p[key] = strconv.Itoa(v)
	return p
}

// OptInt stores *v under key when v is non-nil.
func (p Params) OptInt(key string, v *int) Params {
	if v != nil {
		p[key] = strconv.Itoa(*v)
	}
	return p
}

// OptInt64 stores *v under key when v is non-nil.
func (p Params) OptInt64(key string, v *int64) Params {
	if v != nil {
		p[key] = strconv.FormatInt(*v, 10)
	}
	return p
}

// OptString stores v under key when it is not empty.
func (p Params) OptString(key, v string) Params {
	if v != "" {
		p[key] = v
	}
	return p
}

// Get builds a GET descriptor.
func Get(path string, params Params) Request {
	return Request{Method: "GET", Path: path, Params: params}
}

// Post builds a POST descriptor.
func Post(path string, body any) Request {
	return Request{Method: "POST", Path: path, Body: body}
}

// Put builds a PUT descriptor.
func Put(path string, body any) Request {
	return Request{Method: "PUT", Path: path, Body: body}
}

// Delete builds a DELETE descriptor.
func Delete(path string) Request {
	return Request{Method: "DELETE", Path: path}
}
