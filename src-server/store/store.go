package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"nostrcal/src-server/model"
	"nostrcal/src-server/nostr"

	"github.com/uptrace/bun"
)

// The local event store: the storage/query collaborator the rest of
// the server talks to. Results are whatever has been saved locally;
// relay sync, when configured, feeds the same Save path.
type Store struct {
	db       *bun.DB
	registry *model.Registry
}

// Create a store over an existing bun database. The registry decides
// which kinds Decode recognizes; it is explicit so tests can register
// a subset in isolation.
func New(db *bun.DB, registry *model.Registry) *Store {
	return &Store{db: db, registry: registry}
}

// Create the events and event_tags tables
func CreateSchema(db *bun.DB) error {
	if err := db.RunInTx(context.Background(), &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range []interface{}{
			(*EventRow)(nil),
			(*TagRow)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(row).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}
	return nil
}

// Save signed events. Events are append-only: a new version of a
// replaceable address does not delete its predecessors, reads pick the
// latest and PruneSuperseded clears the rest. Duplicate ids are
// ignored. The whole batch lands in one transaction so an event row can
// never be committed without its tag rows.
func (s *Store) Save(ctx context.Context, events ...*nostr.Event) error {
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, event := range events {
			row := new(EventRow)
			if err := row.FromEvent(event); err != nil {
				return err
			}
			res, err := tx.NewInsert().
				Model(row).
				On("CONFLICT (id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				return err
			}
			if inserted, err := res.RowsAffected(); err == nil && inserted == 0 {
				continue
			}
			for _, tag := range event.Tags {
				if tag.Name() == "" {
					continue
				}
				tagRow := TagRow{
					EventID: event.ID,
					Name:    tag.Name(),
					Value:   tag.Value(),
				}
				if _, err := tx.NewInsert().
					Model(&tagRow).
					Exec(ctx); err != nil {
					return fmt.Errorf("can't insert tag: %w", err)
				}
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("(*Store).Save: %w", err)
	}
	return nil
}

// Query events matching the filter, newest first. May return fewer
// than Limit.
func (s *Store) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	query := s.db.NewSelect().Model((*EventRow)(nil))
	if len(filter.IDs) > 0 {
		query = query.Where("id IN (?)", bun.In(filter.IDs))
	}
	if len(filter.Authors) > 0 {
		query = query.Where("pubkey IN (?)", bun.In(filter.Authors))
	}
	if len(filter.Kinds) > 0 {
		query = query.Where("kind IN (?)", bun.In(filter.Kinds))
	}
	for name, values := range filter.Tags {
		query = query.Where(
			"EXISTS (SELECT 1 FROM event_tags AS t WHERE t.event_id = e.id AND t.name = ? AND t.value IN (?))",
			name, bun.In(values),
		)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	rows := make([]EventRow, 0)
	if err := query.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("(*Store).Query: %w", err)
	}

	events := make([]*nostr.Event, 0, len(rows))
	for _, row := range rows {
		event, err := row.ToEvent()
		if err != nil {
			slog.Warn("can't decode stored event, skipping", "id", row.ID, "error", err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// Resolve the latest version of the event at the given replaceable
// address. Returns (nil, nil) when nothing is stored there.
func (s *Store) Resolve(ctx context.Context, addr nostr.Address) (*nostr.Event, error) {
	row := new(EventRow)
	err := s.db.NewSelect().
		Model(row).
		Where("kind = ?", addr.Kind).
		Where("pubkey = ?", addr.PubKey).
		Where("d_tag = ?", addr.Identifier).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("(*Store).Resolve: %w", err)
	}
	return row.ToEvent()
}

// Decode an envelope through the store's registry
func (s *Store) Decode(event *nostr.Event) (model.View, bool) {
	return s.registry.Decode(event)
}

// Delete every replaceable event that has been superseded by a later
// version at the same address. Returns how many rows went away.
func (s *Store) PruneSuperseded(ctx context.Context) (int64, error) {
	res, err := s.db.NewDelete().
		Model((*EventRow)(nil)).
		Where("kind >= 30000 AND kind < 40000").
		Where("d_tag != ''").
		Where(`EXISTS (
			SELECT 1 FROM events AS newer
			WHERE newer.kind = e.kind
			AND newer.pubkey = e.pubkey
			AND newer.d_tag = e.d_tag
			AND newer.created_at > e.created_at
		)`).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("(*Store).PruneSuperseded: %w", err)
	}
	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("(*Store).PruneSuperseded: %w", err)
	}
	if _, err := s.db.NewDelete().
		Model((*TagRow)(nil)).
		Where("event_id NOT IN (SELECT id FROM events)").
		Exec(ctx); err != nil {
		return pruned, fmt.Errorf("(*Store).PruneSuperseded: can't prune tags: %w", err)
	}
	return pruned, nil
}

// Count stored events
func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().
		Model((*EventRow)(nil)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("(*Store).Count: %w", err)
	}
	return count, nil
}
