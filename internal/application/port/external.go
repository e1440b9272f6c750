package port

import (
	"context"

	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// DocumentSummarizer produces a short summary of an uploaded dossier.
// A failed summarization never blocks the approval workflow; the summary
// field simply stays empty.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, documentPath string) (string, error)
}

// ContractRenderer produces the official renewal confirmation document
// for a completed application.
type ContractRenderer interface {
	Render(ctx context.Context, data *ContractData) ([]byte, error)
}

// ContractData carries everything the renderer needs
type ContractData struct {
	FacultyName        string
	BannerID           string
	JobTitle           string
	Department         string
	RenewalYears       int
	PreviousExpiration string
	NewExpiration      string
	ApprovalDates      map[workflow.Role]string
}

// ApproverSelector picks the user a new pending step is assigned to.
// The default picks the first active holder of the role; alternative
// policies (round robin, load based) can be injected without touching
// the transition engine.
type ApproverSelector interface {
	SelectApprover(ctx context.Context, role workflow.Role) (int64, error)
}
