package codec

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"leadscout-engine/internal/domain"
)

func (c *Codec) saveJSON(leads []domain.Lead, path string) error {
	if leads == nil {
		leads = []domain.Lead{}
	}
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrWrite, path, err)
	}
	return c.writeLocked(path, append(data, '\n'))
}

// loadJSON decodes an array of lead objects. The variant is decided per
// record from the raw keys: `tags` marks a person, `category` a
// company. Records carrying neither are skipped with a warning rather
// than failing the whole load.
func (c *Codec) loadJSON(path string) ([]domain.Lead, error) {
	data, err := c.readLocked(path)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, err)
	}

	leads := make([]domain.Lead, 0, len(raws))
	for i, raw := range raws {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", domain.ErrParse, path, i, err)
		}
		_, isPerson := fields["tags"]
		_, isCompany := fields["category"]
		switch {
		case isPerson:
			var p domain.Person
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("%w: %s record %d: %v", domain.ErrParse, path, i, err)
			}
			if p.Tags == nil {
				p.Tags = []string{}
			}
			leads = append(leads, &p)
		case isCompany:
			var co domain.Company
			if err := json.Unmarshal(raw, &co); err != nil {
				return nil, fmt.Errorf("%w: %s record %d: %v", domain.ErrParse, path, i, err)
			}
			leads = append(leads, &co)
		default:
			c.log.Warn("skipping record without a tags or category field",
				zap.String("path", path), zap.Int("record", i))
		}
	}
	return leads, nil
}
