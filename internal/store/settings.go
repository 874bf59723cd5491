package store

import (
	"context"

	"crediario/internal/core"
)

const KeySettings = "crediario_config"

// Settings is the view over the business configuration singleton.
type Settings struct {
	slot *slot[core.AppConfig]
}

// Get returns the persisted configuration, or the defaults when none was saved.
func (s *Settings) Get() core.AppConfig {
	return s.slot.get()
}

// Update merges p into the configuration and returns the result.
func (s *Settings) Update(ctx context.Context, p core.AppConfigPatch) (core.AppConfig, error) {
	var out core.AppConfig
	err := s.slot.mutate(ctx, func(cur core.AppConfig) (core.AppConfig, error) {
		next := p.Apply(cur)
		if err := next.Validate(); err != nil {
			return cur, err
		}
		out = next
		return next, nil
	})
	if err != nil {
		return core.AppConfig{}, err
	}
	return out, nil
}
