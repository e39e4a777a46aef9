package middleware

// AdminPolicy decides which linked Discord identities may use the admin
// dashboard. The set is loaded from configuration so rotating admins never
// needs a rebuild.
type AdminPolicy struct {
	ids map[string]struct{}
}

func NewAdminPolicy(discordIDs []string) *AdminPolicy {
	ids := make(map[string]struct{}, len(discordIDs))
	for _, id := range discordIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &AdminPolicy{ids: ids}
}

func (p *AdminPolicy) IsAdmin(discordID string) bool {
	if p == nil || discordID == "" {
		return false
	}
	_, ok := p.ids[discordID]
	return ok
}

func (p *AdminPolicy) Size() int {
	if p == nil {
		return 0
	}
	return len(p.ids)
}
