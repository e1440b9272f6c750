package service

import (
	"context"
	"fmt"

	"github.com/facultyops/renewal-workflow/internal/application/dispatcher"
	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// NewDossierSummaryHandler returns the event handler that summarizes an
// uploaded document and stores the result on the owning instance.
// Summarization is best effort; failures are logged and the summary
// field stays empty.
func NewDossierSummaryHandler(
	renewalRepo port.RenewalRepository,
	terminationRepo port.TerminationRepository,
	summarizer port.DocumentSummarizer,
	emitter EventEmitter,
	logger Logger,
) dispatcher.Handler {
	return func(ctx context.Context, evt *event.Event) error {
		path := evt.GetPayloadString("path")
		if path == "" {
			return fmt.Errorf("dossier event %s has no path", evt.ID)
		}

		summary, err := summarizer.Summarize(ctx, path)
		if err != nil {
			logger.Error("Failed to summarize document", "error", err, "kind", evt.Kind, "instance_id", evt.InstanceID, "path", path)
			return err
		}

		switch evt.Kind {
		case workflow.KindRenewal:
			err = renewalRepo.SetSummary(ctx, evt.InstanceID, summary)
		case workflow.KindTermination:
			err = terminationRepo.SetSummary(ctx, evt.InstanceID, summary)
		default:
			err = fmt.Errorf("unknown workflow kind %q", evt.Kind)
		}
		if err != nil {
			logger.Error("Failed to store summary", "error", err, "kind", evt.Kind, "instance_id", evt.InstanceID)
			return err
		}

		logger.Info("Document summary stored", "kind", evt.Kind, "instance_id", evt.InstanceID)
		if emitter != nil {
			emitter.DispatchAsync(ctx, event.NewEventWithCorrelation(event.TypeSummaryReady, evt.Kind, evt.InstanceID, map[string]interface{}{
				"path": path,
			}, evt.CorrelationID))
		}
		return nil
	}
}
