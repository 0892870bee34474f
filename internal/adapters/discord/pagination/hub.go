package pagination

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Reaction es lo mínimo de un evento de reacción que necesita una sesión.
type Reaction struct {
	ChannelID string
	MessageID string
	GuildID   string
	UserID    string
	// Emoji en formato API: "⏭" o "name:id"
	Emoji string
	Added bool
}

const subscriberBuffer = 32

// Hub reparte los eventos de reacción del gateway entre las sesiones
// activas, filtrando por id de mensaje.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Reaction
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Reaction)}
}

// Subscribe registra un mensaje. El canal se cierra al llamar a cancel.
// Un mensaje tiene a lo sumo un suscriptor; suscribir de nuevo reemplaza al anterior.
func (h *Hub) Subscribe(messageID string) (<-chan Reaction, func()) {
	ch := make(chan Reaction, subscriberBuffer)

	h.mu.Lock()
	if old, ok := h.subs[messageID]; ok {
		close(old)
	}
	h.subs[messageID] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if cur, ok := h.subs[messageID]; ok && cur == ch {
				delete(h.subs, messageID)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish no bloquea nunca: si la sesión está atrasada el evento se descarta.
func (h *Hub) Publish(r Reaction) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.subs[r.MessageID]
	if !ok {
		return false
	}
	select {
	case ch <- r:
		return true
	default:
		log.Debug().Str("message", r.MessageID).Msg("pagination event dropped, session is busy")
		return false
	}
}

// Len es la cantidad de sesiones escuchando.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// handlers para s.AddHandler
func (h *Hub) OnReactionAdd(_ *discordgo.Session, e *discordgo.MessageReactionAdd) {
	if e.MessageReaction == nil {
		return
	}
	h.Publish(fromEvent(e.MessageReaction, true))
}

func (h *Hub) OnReactionRemove(_ *discordgo.Session, e *discordgo.MessageReactionRemove) {
	if e.MessageReaction == nil {
		return
	}
	h.Publish(fromEvent(e.MessageReaction, false))
}

func fromEvent(r *discordgo.MessageReaction, added bool) Reaction {
	return Reaction{
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		GuildID:   r.GuildID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.APIName(),
		Added:     added,
	}
}
