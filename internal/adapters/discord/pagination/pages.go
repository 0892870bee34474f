package pagination

// Pages es la posición de una sesión sobre una lista de entradas.
type Pages struct {
	Index   int // página actual, desde 0
	Total   int
	PerPage int
	Len     int // cantidad de entradas
}

func NewPages(perPage, length int) Pages {
	if perPage <= 0 {
		perPage = 1
	}
	total := (length + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	return Pages{Total: total, PerPage: perPage, Len: length}
}

func (p Pages) Last() int { return p.Total - 1 }

// Number es la página para mostrar, desde 1.
func (p Pages) Number() int { return p.Index + 1 }

// Start y End delimitan las entradas de la página actual.
func (p Pages) Start() int { return min(p.Index*p.PerPage, p.Len) }

func (p Pages) End() int { return min(p.Start()+p.PerPage, p.Len) }

// PageOf devuelve la página que contiene la entrada i.
func (p Pages) PageOf(i int) int {
	return p.clamp(i / p.PerPage)
}

func (p Pages) clamp(i int) int {
	return max(0, min(i, p.Last()))
}
