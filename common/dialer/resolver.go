// Package dialer resolves the endpoints and paths modelcheck talks to. A value
// can come from a flag, from the environment, or from a built-in default, and
// Composite lets callers stack those in priority order.
package dialer

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Resolver resolves a service, getting an address or URL.
type Resolver interface {
	// Resolve resolves a service, getting an address or URL (or an error)
	Resolve() (string, error)
}

// ConstantResolver always returns the same value
type ConstantResolver struct {
	s string
}

func NewConstantResolver(s string) *ConstantResolver {
	return &ConstantResolver{s: s}
}

func (r *ConstantResolver) Resolve() (string, error) {
	return r.s, nil
}

func (r *ConstantResolver) String() string {
	return "constant(" + r.s + ")"
}

// EnvResolver resolves by looking for a key in the OS Environment.
// An unset or blank variable resolves to "".
type EnvResolver struct {
	key string
}

func NewEnvResolver(key string) *EnvResolver {
	return &EnvResolver{key: key}
}

func (r *EnvResolver) Resolve() (string, error) {
	return strings.TrimSpace(os.Getenv(r.key)), nil
}

func (r *EnvResolver) String() string {
	return "env(" + r.key + ")"
}

// CompositeResolver resolves by resolving, in order, via delegates.
// The first non-empty value or the first error wins.
type CompositeResolver struct {
	dels []Resolver
}

func NewCompositeResolver(dels ...Resolver) *CompositeResolver {
	return &CompositeResolver{dels: dels}
}

func (r *CompositeResolver) Resolve() (string, error) {
	for _, d := range r.dels {
		if s, err := d.Resolve(); s != "" || err != nil {
			return s, err
		}
	}
	return "", errors.Errorf("could not resolve: no delegate resolved: %v", r.dels)
}

// RequiredResolver wraps a delegate and fails with the given name when the
// delegate resolves to "".
type RequiredResolver struct {
	name string
	del  Resolver
}

func NewRequiredResolver(name string, del Resolver) *RequiredResolver {
	return &RequiredResolver{name: name, del: del}
}

func (r *RequiredResolver) Resolve() (string, error) {
	s, err := r.del.Resolve()
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", r.name)
	}
	if s == "" {
		return "", errors.Errorf("%s is not set", r.name)
	}
	return s, nil
}
