// Package meeting generates video-consultation URLs. Links are generated,
// never provisioned, and are not checked against existing ones.
package meeting

import (
	"fmt"
	"net/url"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	DefaultDomain    = "meet.jit.si"
	DefaultNamespace = "SmileMatch"

	// IDLength is the number of nanoid characters in a meeting id
	IDLength = 10
)

type Generator struct {
	domain    string
	namespace string
}

func NewGenerator(domain, namespace string) *Generator {
	if domain == "" {
		domain = DefaultDomain
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Generator{domain: domain, namespace: namespace}
}

// GenerateID returns a random URL-safe identifier of IDLength characters
func (g *Generator) GenerateID() (string, error) {
	return gonanoid.New(IDLength)
}

// GenerateURL returns https://<domain>/<namespace>-<id>
func (g *Generator) GenerateURL() (string, error) {
	id, err := g.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generate meeting id: %w", err)
	}
	return fmt.Sprintf("https://%s/%s-%s", g.domain, g.namespace, id), nil
}

// IsValidURL reports whether raw is an absolute http(s) URL with a host
func IsValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
