package journal

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	util "github.com/ubloom/engine/internal/utils"
)

// Entry is one saved journal entry. The reflection payload is display-only
// and carried opaquely; the engine never acts on its contents after save.
type Entry struct {
	ID         uuid.UUID      `gorm:"type:text;primaryKey" json:"id"`
	Date       util.Date      `gorm:"type:text" json:"date"`
	Text       string         `json:"text"`
	Reflection ReflectionData `gorm:"type:text" json:"reflection,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ReflectionData is the raw reflection JSON attached to an entry.
type ReflectionData json.RawMessage

func (d ReflectionData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte(`null`), nil
	}
	return json.RawMessage(d).MarshalJSON()
}

func (d *ReflectionData) UnmarshalJSON(b []byte) error {
	return (*json.RawMessage)(d).UnmarshalJSON(b)
}

func (d ReflectionData) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

func (d *ReflectionData) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*d = append(ReflectionData{}, v...)
		return nil
	case string:
		*d = ReflectionData(v)
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into ReflectionData", value)
	}
}
