package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TableSeats is one entry of a seat manifest: the seats a reservation
// claims at a single table.
type TableSeats struct {
	TableID uint64   `json:"table_id"`
	SeatIDs []uint64 `json:"seat_ids"`
}

// SeatManifest describes which seats a reservation claims, grouped by
// table.  It is persisted as a JSON array in the
// `reservations.seat_manifest` column.  Entries with an empty seat
// list are never persisted; Normalize enforces that.
type SeatManifest []TableSeats

// Flatten returns the union of seat IDs across all entries, in
// manifest order with duplicates removed.
func (m SeatManifest) Flatten() []uint64 {
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0)
	for _, entry := range m {
		for _, id := range entry.SeatIDs {
			if id == 0 {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// IsEmpty reports whether the manifest claims no seats at all.
func (m SeatManifest) IsEmpty() bool {
	return len(m.Flatten()) == 0
}

// Normalize drops entries whose seat list is empty after removing
// zero ids, preserving order.
func (m SeatManifest) Normalize() SeatManifest {
	out := make(SeatManifest, 0, len(m))
	for _, entry := range m {
		ids := make([]uint64, 0, len(entry.SeatIDs))
		for _, id := range entry.SeatIDs {
			if id != 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			out = append(out, TableSeats{TableID: entry.TableID, SeatIDs: ids})
		}
	}
	return out
}

// Remove computes a partial cancellation.  For every entry of m it
// intersects the seat list with the matching cancel entry (by table
// id), returning the pruned manifest (entries left with no seats are
// dropped) and the removed manifest alongside the flat list of removed
// seat ids.  Seats named in cancel that are not in m are ignored.
func (m SeatManifest) Remove(cancel SeatManifest) (kept SeatManifest, removed SeatManifest, removedIDs []uint64) {
	drop := make(map[uint64]map[uint64]struct{}, len(cancel))
	for _, entry := range cancel {
		set, ok := drop[entry.TableID]
		if !ok {
			set = make(map[uint64]struct{}, len(entry.SeatIDs))
			drop[entry.TableID] = set
		}
		for _, id := range entry.SeatIDs {
			set[id] = struct{}{}
		}
	}
	kept = make(SeatManifest, 0, len(m))
	removed = make(SeatManifest, 0, len(cancel))
	for _, entry := range m {
		set := drop[entry.TableID]
		keepIDs := make([]uint64, 0, len(entry.SeatIDs))
		removeIDs := make([]uint64, 0)
		for _, id := range entry.SeatIDs {
			if _, gone := set[id]; gone {
				removeIDs = append(removeIDs, id)
			} else {
				keepIDs = append(keepIDs, id)
			}
		}
		if len(keepIDs) > 0 {
			kept = append(kept, TableSeats{TableID: entry.TableID, SeatIDs: keepIDs})
		}
		if len(removeIDs) > 0 {
			removed = append(removed, TableSeats{TableID: entry.TableID, SeatIDs: removeIDs})
			removedIDs = append(removedIDs, removeIDs...)
		}
	}
	return kept, removed, removedIDs
}

// Value implements driver.Valuer.  The manifest is always written as
// structured JSON, never as the legacy double-encoded string form.
func (m SeatManifest) Value() (driver.Value, error) {
	b, err := json.Marshal(m.Normalize())
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner.  Older rows stored the manifest as a
// JSON string containing JSON ("\"[{...}]\""); Scan accepts both forms
// but the string form is rewritten as structured JSON on the next save.
func (m *SeatManifest) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("seat manifest: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}

	// structAlias avoids recursing into Scan/UnmarshalJSON.
	type structAlias SeatManifest
	var direct structAlias
	if err := json.Unmarshal(raw, &direct); err == nil {
		*m = SeatManifest(direct).Normalize()
		return nil
	}

	// Legacy form: a JSON string whose contents are the JSON array.
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return fmt.Errorf("seat manifest: malformed column value: %w", err)
	}
	var legacy structAlias
	if err := json.Unmarshal([]byte(inner), &legacy); err != nil {
		return fmt.Errorf("seat manifest: malformed legacy value: %w", err)
	}
	*m = SeatManifest(legacy).Normalize()
	return nil
}
