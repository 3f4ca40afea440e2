package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/salesdesk/internal/logging"
)

// DeleteRow deletes one row of a screen by its identity value.
func (s *Service) DeleteRow(ctx context.Context, key, id string) error {
	def, err := s.Screen(key)
	if err != nil {
		return err
	}
	return s.deleteRow(ctx, def, id)
}

func (s *Service) deleteRow(ctx context.Context, def ScreenDefinition, id string) error {
	if def.Info.ReadOnly {
		return fmt.Errorf("delete %s/%s: %w", def.Info.Key, id, ErrReadOnly)
	}
	if s.cfg.ReadOnly {
		return fmt.Errorf("delete %s/%s: %w", def.Info.Key, id, ErrActionDisabled)
	}
	if id == "" {
		return fmt.Errorf("delete %s: row has no %s: %w", def.Info.Key, def.IDColumn(), ErrRowNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	if err := s.source.Delete(ctx, def.Info.Table, def.IDColumn(), id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", def.Info.Key, id, err)
	}

	logging.ForScreen(ctx, def.Info.Key).Info("row deleted",
		"id", id,
		"ip", IPAddressFromContext(ctx),
		"user_agent", UserAgentFromContext(ctx),
	)
	return nil
}
