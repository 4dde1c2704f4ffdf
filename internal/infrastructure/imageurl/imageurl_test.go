package imageurl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://assets.example.com"

func TestRewrite(t *testing.T) {
	r := New(base + "/")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"relative path", "/upload/a.png", base + "/upload/a.png"},
		{"localhost", "http://localhost:8080/upload/a.png", base + "/upload/a.png"},
		{"lan address", "http://192.168.200.30:8080/upload/a.png", base + "/upload/a.png"},
		{"other lan address", "http://192.168.0.104:8080/img/b.jpg", base + "/img/b.jpg"},
		{"only first lan match", "http://192.168.1.2:8080/x?next=http://192.168.1.3:8080/y", base + "/x?next=http://192.168.1.3:8080/y"},
		{"lan on another port", "http://192.168.1.2:9090/a.png", "http://192.168.1.2:9090/a.png"},
		{"external", "https://cdn.example.org/a.png", "https://cdn.example.org/a.png"},
		{"relative without slash", "upload/a.png", "upload/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Rewrite(tt.in))
		})
	}
}

func TestRewriteTree(t *testing.T) {
	r := New(base)

	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"list": [
			{"productId": 1, "title": "/not/an/image", "mainImage": "/upload/1.png",
			 "images": ["http://localhost:8080/upload/2.png", {"imageUrl": "/upload/3.png"}]},
			{"productId": 2, "seller": {"avatar": "http://192.168.3.4:8080/a.png"}}
		],
		"total": 2
	}`), &doc))

	out, err := json.Marshal(r.RewriteTree(doc))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"list": [
			{"productId": 1, "title": "/not/an/image", "mainImage": "`+base+`/upload/1.png",
			 "images": ["`+base+`/upload/2.png", {"imageUrl": "`+base+`/upload/3.png"}]},
			{"productId": 2, "seller": {"avatar": "`+base+`/a.png"}}
		],
		"total": 2
	}`, string(out))
}

func TestCustomFields(t *testing.T) {
	r := New(base, "picture")
	doc := map[string]any{"picture": "/p.png", "imageUrl": "/i.png"}
	r.RewriteTree(doc)
	assert.Equal(t, base+"/p.png", doc["picture"])
	assert.Equal(t, "/i.png", doc["imageUrl"])
}
