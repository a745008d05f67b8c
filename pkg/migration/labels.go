package migration

import (
	"context"
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
)

// SyncLabels reconciles the destination label set with the source's. This is
// a union-merge: only labels whose name is absent on the destination are
// created; existing destination labels are never deleted or recolored.
// On the bootstrap path the destination was just created, so every source
// label is pushed without listing first.
func (e *Engine) SyncLabels(ctx context.Context, spec *RepositorySpec, bootstrap bool) error {
	labels, err := e.Source.ListLabels(ctx, spec.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list source labels: %w", err)
	}
	if len(labels) == 0 {
		return nil
	}

	existing := make(map[string]struct{})
	if !bootstrap {
		names, err := e.Dest.ListLabelNames(ctx, e.Owner, spec.DestName)
		if err != nil {
			return fmt.Errorf("failed to list destination labels: %w", err)
		}
		for _, name := range names {
			existing[name] = struct{}{}
		}
	}

	var created int
	for _, label := range labels {
		if _, ok := existing[label.Name]; ok {
			logger.Debug("Skipping existing label", "repo", spec.DestName, "label", label.Name)
			continue
		}
		if err := e.Dest.CreateLabel(ctx, e.Owner, spec.DestName, label); err != nil {
			logger.Warn("Failed to create label", "repo", spec.DestName, "label", label.Name, "error", err)
			continue
		}
		created++
	}
	logger.Info("Synchronized labels", "repo", spec.DestName, "source", len(labels), "created", created)
	return nil
}
