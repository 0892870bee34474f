package command

// Flags son las políticas que el dispatcher revisa antes de llamar al handler.
type Flags uint8

const (
	// OnlyGuilds rechaza invocaciones por DM.
	OnlyGuilds Flags = 1 << iota
	// OnlyOwner exige dueño del server (o dueño del bot).
	OnlyOwner
	// SkipDefer no manda typing / deferred ack antes del handler.
	SkipDefer
)

func (f Flags) Has(flag Flags) bool { return f&flag == flag }

type Group string

const (
	GroupOsu     Group = "osu!"
	GroupUtility Group = "Utility"
)

// Descriptor describe un comando. Names[0] es el nombre canónico, el resto son alias.
// No se modifica después de registrarlo.
type Descriptor[H any] struct {
	Names    []string
	Group    Group
	Flags    Flags
	Desc     string
	Help     string
	Usage    string
	Examples []string
	Handler  H
}

func (d *Descriptor[H]) Name() string { return d.Names[0] }

func (d *Descriptor[H]) Aliases() []string { return d.Names[1:] }
