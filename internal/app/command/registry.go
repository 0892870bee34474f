package command

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSealed = errors.New("registry is sealed")

// CollisionError: dos descriptores comparten nombre o alias.
type CollisionError struct {
	Alias    string
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("command alias %q of %q is already registered by %q", e.Alias, e.Incoming, e.Existing)
}

// Registry mapea nombre/alias → descriptor. Se llena al arrancar y después
// de Seal sólo se lee, sin locks.
type Registry[H any] struct {
	fold   bool
	byName map[string]*Descriptor[H]
	list   []*Descriptor[H]
	sealed bool
}

// NewPrefixRegistry: nombres en minúsculas, el tokenizer baja el token antes de buscar.
func NewPrefixRegistry[H any]() *Registry[H] {
	return &Registry[H]{fold: true, byName: map[string]*Descriptor[H]{}}
}

// NewSlashRegistry: match exacto contra el nombre que manda la plataforma.
func NewSlashRegistry[H any]() *Registry[H] {
	return &Registry[H]{byName: map[string]*Descriptor[H]{}}
}

func (r *Registry[H]) key(name string) string {
	if r.fold {
		return strings.ToLower(name)
	}
	return name
}

func (r *Registry[H]) Register(ds ...*Descriptor[H]) error {
	if r.sealed {
		return ErrSealed
	}
	for _, d := range ds {
		if len(d.Names) == 0 {
			return errors.New("command without name")
		}
		// primero validar todo el descriptor, así no queda a medio registrar
		seen := make(map[string]struct{}, len(d.Names))
		for _, n := range d.Names {
			k := r.key(n)
			if prev, ok := r.byName[k]; ok {
				return &CollisionError{Alias: k, Existing: prev.Name(), Incoming: d.Name()}
			}
			if _, ok := seen[k]; ok {
				return &CollisionError{Alias: k, Existing: d.Name(), Incoming: d.Name()}
			}
			seen[k] = struct{}{}
		}
		for k := range seen {
			r.byName[k] = d
		}
		r.list = append(r.list, d)
	}
	return nil
}

// MustRegister entra en pánico ante una colisión: es un error de programación.
func (r *Registry[H]) MustRegister(ds ...*Descriptor[H]) {
	if err := r.Register(ds...); err != nil {
		panic(err)
	}
}

func (r *Registry[H]) Seal() { r.sealed = true }

func (r *Registry[H]) Lookup(name string) (*Descriptor[H], bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Commands devuelve los descriptores en orden de registro.
func (r *Registry[H]) Commands() []*Descriptor[H] { return r.list }

// Names son todos los nombres y alias registrados.
func (r *Registry[H]) Names() []string {
	out := make([]string, 0, len(r.byName))
	for k := range r.byName {
		out = append(out, k)
	}
	return out
}

func (r *Registry[H]) Len() int { return len(r.list) }
