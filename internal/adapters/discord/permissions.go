package discord

// isOwner: dueño del guild según el state, o el dueño del bot.
func (d *Dispatcher) isOwner(guildID, userID string) bool {
	if userID == "" {
		return false
	}
	if d.cfg.OwnerID != "" && userID == d.cfg.OwnerID {
		return true
	}
	if guildID == "" || d.perms == nil {
		return false
	}
	g, err := d.perms.Guild(guildID)
	return err == nil && g != nil && g.OwnerID == userID
}
