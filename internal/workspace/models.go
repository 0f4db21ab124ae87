package workspace

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Entry is one named dataset belonging to one user. The primary key embeds
// the owner so different users never see each other's data.
type Entry struct {
	bun.BaseModel `bun:"table:workspace_entries,alias:we"`

	Key       string          `bun:"key,pk"`
	SubjectID string          `bun:"subject_id,notnull"`
	Dataset   string          `bun:"dataset,notnull"`
	Value     json.RawMessage `bun:"value,notnull"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// EntryKey builds the storage key for a user's dataset.
func EntryKey(subjectID, dataset string) string {
	return subjectID + "-" + dataset
}
