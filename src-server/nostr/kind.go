package nostr

// Calendar event kinds. All of these are parameterized replaceable:
// the latest created_at per (kind, pubkey, d tag) wins.
const (
	KindDateEvent    = 31922
	KindTimeEvent    = 31923
	KindCalendar     = 31924
	KindRSVP         = 31925
	KindAvailability = 31926
	KindBusyBlock    = 31927
)

// Whether events of this kind are addressable by a kind:pubkey:identifier
// triple and superseded by later versions rather than deleted
func IsReplaceableKind(kind int) bool {
	return kind >= 30000 && kind < 40000
}
