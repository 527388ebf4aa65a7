package nostr

import "context"

// Signs a draft event in place, filling ID and Sig. Implementations
// live outside this repo (remote signer app, hardware key, test fake);
// signing may require user interaction and can fail or be cancelled.
type Signer interface {
	Sign(ctx context.Context, event *Event) error
}

// Fills the event ID but leaves the signature blank. Good enough for a
// local-only store that never broadcasts; relays will reject these.
type NopSigner struct{}

func (NopSigner) Sign(_ context.Context, event *Event) error {
	id, err := event.ComputeID()
	if err != nil {
		return err
	}
	event.ID = id
	return nil
}
