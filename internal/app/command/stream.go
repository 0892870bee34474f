package command

import (
	"strconv"
	"strings"
	"unicode"
)

// Parsed es el resultado de tokenizar un mensaje con prefijo ya resuelto.
type Parsed[H any] struct {
	Descriptor *Descriptor[H]
	Args       *Args
}

// Parse separa el nombre del comando del resto del texto. Si el token exacto no
// existe prueba sin los dígitos del final ("nlb2" → nlb con Num=2).
func Parse[H any](content, prefix string, reg *Registry[H]) (Parsed[H], bool) {
	rest := strings.TrimLeftFunc(content, unicode.IsSpace)
	rest = strings.TrimPrefix(rest, prefix)

	token, remainder := nextToken(rest)
	if token == "" {
		return Parsed[H]{}, false
	}
	name := strings.ToLower(token)

	if d, ok := reg.Lookup(name); ok {
		return Parsed[H]{Descriptor: d, Args: NewArgs(remainder, nil)}, true
	}

	trimmed := strings.TrimRightFunc(name, isASCIIDigit)
	if trimmed == name || trimmed == "" {
		return Parsed[H]{}, false
	}
	d, ok := reg.Lookup(trimmed)
	if !ok {
		return Parsed[H]{}, false
	}
	num, err := strconv.ParseUint(name[len(trimmed):], 10, 64)
	if err != nil {
		return Parsed[H]{}, false
	}
	return Parsed[H]{Descriptor: d, Args: NewArgs(remainder, &num)}, true
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// nextToken corta hasta el primer espacio y devuelve el resto sin espacios al inicio.
func nextToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// Args es el stream de argumentos de una invocación de texto. No se comparte entre goroutines.
type Args struct {
	rest string
	num  *uint64
}

func NewArgs(raw string, num *uint64) *Args {
	return &Args{rest: strings.TrimLeftFunc(raw, unicode.IsSpace), num: num}
}

// Num es el sufijo numérico pegado al nombre del comando, si hubo.
func (a *Args) Num() (uint64, bool) {
	if a.num == nil {
		return 0, false
	}
	return *a.num, true
}

func (a *Args) Next() (string, bool) {
	tok, rest := nextToken(a.rest)
	if tok == "" {
		return "", false
	}
	a.rest = rest
	return tok, true
}

// Take consume hasta n argumentos.
func (a *Args) Take(n int) []string {
	out := make([]string, 0, n)
	for len(out) < n {
		tok, ok := a.Next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

// Rest es lo que queda sin consumir.
func (a *Args) Rest() string { return strings.TrimRightFunc(a.rest, unicode.IsSpace) }
