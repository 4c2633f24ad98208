package resource

// Record is the contract every stored item satisfies: an identifier plus
// creation and update timestamps in epoch milliseconds. Concrete entities
// get it for free by embedding Entity.
type Record interface {
	// RecordID returns the identifier, or "" when unset.
	RecordID() string

	// SetRecordID assigns the identifier. Called by the store when
	// minting an ID at creation, and to force the key on update.
	SetRecordID(id string)

	// CreatedAtMillis returns the creation timestamp, or 0 when unset.
	CreatedAtMillis() int64

	// SetCreatedAtMillis assigns the creation timestamp. Set once by
	// the store at creation; immutable afterwards.
	SetCreatedAtMillis(ms int64)

	// UpdatedAtMillis returns the last-modification timestamp.
	UpdatedAtMillis() int64

	// SetUpdatedAtMillis assigns the last-modification timestamp.
	// Refreshed by the store on every create, update, and patch.
	SetUpdatedAtMillis(ms int64)
}

// Entity is the common base for all stored records. Timestamps are epoch
// milliseconds, matching how they travel on the wire.
type Entity struct {
	ID        string `json:"id,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

func (e *Entity) RecordID() string            { return e.ID }
func (e *Entity) SetRecordID(id string)       { e.ID = id }
func (e *Entity) CreatedAtMillis() int64      { return e.CreatedAt }
func (e *Entity) SetCreatedAtMillis(ms int64) { e.CreatedAt = ms }
func (e *Entity) UpdatedAtMillis() int64      { return e.UpdatedAt }
func (e *Entity) SetUpdatedAtMillis(ms int64) { e.UpdatedAt = ms }
