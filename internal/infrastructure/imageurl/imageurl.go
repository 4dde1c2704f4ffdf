// Package imageurl rewrites image URLs the backend stored against a
// development host so they resolve against the configured asset server.
package imageurl

import (
	"regexp"
	"strings"
)

const localhostBase = "http://localhost:8080"

var lanBase = regexp.MustCompile(`http://192\.168\.\d+\.\d+:8080`)

// DefaultFields are the JSON keys RewriteTree treats as image URLs.
var DefaultFields = []string{"imageUrl", "mainImage", "mainImageUrl", "coverImage", "avatar", "images", "imageList"}

// Rewriter rewrites image URLs onto BaseURL.
type Rewriter struct {
	BaseURL string
	fields  map[string]struct{}
}

// New creates a Rewriter. fields defaults to DefaultFields.
func New(baseURL string, fields ...string) *Rewriter {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	r := &Rewriter{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		fields:  make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		r.fields[f] = struct{}{}
	}
	return r
}

// Rewrite applies the first matching rule:
//   - blank input yields ""
//   - a root-relative path is prefixed with BaseURL
//   - the first http://localhost:8080 is replaced by BaseURL
//   - the first http://192.168.x.y:8080 is replaced by BaseURL
//
// Anything else is returned unchanged.
func (r *Rewriter) Rewrite(url string) string {
	if strings.TrimSpace(url) == "" {
		return ""
	}
	if strings.HasPrefix(url, "/") {
		return r.BaseURL + url
	}
	if strings.Contains(url, localhostBase) {
		return strings.Replace(url, localhostBase, r.BaseURL, 1)
	}
	if loc := lanBase.FindStringIndex(url); loc != nil {
		return url[:loc[0]] + r.BaseURL + url[loc[1]:]
	}
	return url
}

// RewriteTree rewrites, in place, every string under an image field of a
// decoded JSON value and returns it.
func (r *Rewriter) RewriteTree(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if _, ok := r.fields[k]; ok {
				node[k] = r.rewriteValue(child)
				continue
			}
			node[k] = r.RewriteTree(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = r.RewriteTree(child)
		}
		return node
	default:
		return v
	}
}

func (r *Rewriter) rewriteValue(v any) any {
	switch val := v.(type) {
	case string:
		return r.Rewrite(val)
	case []any:
		for i, item := range val {
			val[i] = r.rewriteValue(item)
		}
		return val
	case map[string]any:
		return r.RewriteTree(val)
	default:
		return v
	}
}
