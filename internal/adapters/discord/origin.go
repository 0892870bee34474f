package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

const colorRed = 0xE74C3C

type OriginKind string

const (
	OriginPrefix OriginKind = "prefix"
	OriginSlash  OriginKind = "slash"
)

// Reply es una respuesta con texto y/o embed.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

func (r Reply) embeds() []*discordgo.MessageEmbed {
	if r.Embed == nil {
		return nil
	}
	return []*discordgo.MessageEmbed{r.Embed}
}

// Origin abstrae de dónde vino un comando: un mensaje de texto o una
// interacción. Los handlers responden siempre a través de acá.
type Origin interface {
	Kind() OriginKind
	GuildID() string
	ChannelID() string
	User() *discordgo.User
	// Ack manda el "trabajando": typing o deferred response.
	Ack() error
	// Send crea la respuesta y devuelve el mensaje creado.
	Send(r Reply) (*discordgo.Message, error)
	// Edit actualiza un mensaje devuelto por Send.
	Edit(msg *discordgo.Message, r Reply) (*discordgo.Message, error)
	// Error responde con un embed rojo.
	Error(content string) error
}

// ---------- mensajes de texto ----------

type textOrigin struct {
	p   Platform
	msg *discordgo.Message
}

func NewTextOrigin(p Platform, msg *discordgo.Message) Origin {
	return &textOrigin{p: p, msg: msg}
}

func (o *textOrigin) Kind() OriginKind      { return OriginPrefix }
func (o *textOrigin) GuildID() string       { return o.msg.GuildID }
func (o *textOrigin) ChannelID() string     { return o.msg.ChannelID }
func (o *textOrigin) User() *discordgo.User { return o.msg.Author }

func (o *textOrigin) Ack() error { return o.p.ChannelTyping(o.msg.ChannelID) }

func (o *textOrigin) Send(r Reply) (*discordgo.Message, error) {
	return o.p.ChannelMessageSendComplex(o.msg.ChannelID, &discordgo.MessageSend{
		Content: r.Content,
		Embeds:  r.embeds(),
	})
}

func (o *textOrigin) Edit(msg *discordgo.Message, r Reply) (*discordgo.Message, error) {
	edit := discordgo.NewMessageEdit(msg.ChannelID, msg.ID).SetContent(r.Content)
	if r.Embed != nil {
		edit.SetEmbed(r.Embed)
	}
	return o.p.ChannelMessageEditComplex(edit)
}

func (o *textOrigin) Error(content string) error {
	_, err := o.Send(Reply{Embed: errorEmbed(content)})
	return err
}

// ---------- interacciones ----------

type interactionOrigin struct {
	p  Platform
	ic *discordgo.Interaction
	// deferred o ya respondida: desde ahí todo es edit de la respuesta original
	responded bool
}

func NewInteractionOrigin(p Platform, ic *discordgo.Interaction) Origin {
	return &interactionOrigin{p: p, ic: ic}
}

func (o *interactionOrigin) Kind() OriginKind  { return OriginSlash }
func (o *interactionOrigin) GuildID() string   { return o.ic.GuildID }
func (o *interactionOrigin) ChannelID() string { return o.ic.ChannelID }

func (o *interactionOrigin) User() *discordgo.User {
	if o.ic.Member != nil && o.ic.Member.User != nil {
		return o.ic.Member.User
	}
	return o.ic.User
}

func (o *interactionOrigin) Ack() error {
	err := o.p.InteractionRespond(o.ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err == nil {
		o.responded = true
	}
	return err
}

func (o *interactionOrigin) Send(r Reply) (*discordgo.Message, error) {
	if o.responded {
		return o.edit(r)
	}
	err := o.p.InteractionRespond(o.ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: r.Content,
			Embeds:  r.embeds(),
		},
	})
	if err != nil {
		return nil, err
	}
	o.responded = true
	return o.p.InteractionResponse(o.ic)
}

func (o *interactionOrigin) Edit(_ *discordgo.Message, r Reply) (*discordgo.Message, error) {
	if !o.responded {
		return nil, errors.New("interaction has no response to edit")
	}
	return o.edit(r)
}

func (o *interactionOrigin) edit(r Reply) (*discordgo.Message, error) {
	content := r.Content
	embeds := r.embeds()
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	return o.p.InteractionResponseEdit(o.ic, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	})
}

func (o *interactionOrigin) Error(content string) error {
	if o.responded {
		_, err := o.edit(Reply{Embed: errorEmbed(content)})
		return err
	}
	err := o.p.InteractionRespond(o.ic, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{errorEmbed(content)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		o.responded = true
	}
	return err
}

func errorEmbed(content string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Description: content, Color: colorRed}
}
