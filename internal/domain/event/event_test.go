package event

import (
	"testing"

	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

func TestNewEvent(t *testing.T) {
	evt := NewEvent(TypeDecisionSubmitted, workflow.KindRenewal, 42, map[string]interface{}{
		"role":     "Dean",
		"decision": "approve",
	})

	if evt.ID == "" {
		t.Error("NewEvent() should generate an ID")
	}
	if evt.CorrelationID == "" {
		t.Error("NewEvent() should generate a correlation ID")
	}
	if evt.Type != TypeDecisionSubmitted {
		t.Errorf("Type = %v, want %v", evt.Type, TypeDecisionSubmitted)
	}
	if evt.Kind != workflow.KindRenewal {
		t.Errorf("Kind = %v, want %v", evt.Kind, workflow.KindRenewal)
	}
	if evt.InstanceID != 42 {
		t.Errorf("InstanceID = %v, want 42", evt.InstanceID)
	}
	if evt.Timestamp.IsZero() {
		t.Error("NewEvent() should stamp the event")
	}
}

func TestNewEventWithCorrelation(t *testing.T) {
	first := NewEvent(TypeRenewalInitiated, workflow.KindRenewal, 1, nil)
	second := NewEventWithCorrelation(TypeSummaryReady, workflow.KindRenewal, 1, nil, first.CorrelationID)

	if second.CorrelationID != first.CorrelationID {
		t.Error("correlated event should share the correlation ID")
	}
	if second.ID == first.ID {
		t.Error("correlated event must still get its own ID")
	}
}

func TestEvent_PayloadAccessors(t *testing.T) {
	evt := NewEvent(TypeDossierUploaded, workflow.KindTermination, 7, map[string]interface{}{
		"path":       "uploads/doc.pdf",
		"page_count": 3,
		"final":      true,
	})

	if got := evt.GetPayloadString("path"); got != "uploads/doc.pdf" {
		t.Errorf("GetPayloadString() = %v", got)
	}
	if got := evt.GetPayloadInt("page_count"); got != 3 {
		t.Errorf("GetPayloadInt() = %v, want 3", got)
	}
	if !evt.GetPayloadBool("final") {
		t.Error("GetPayloadBool() = false, want true")
	}
	if got := evt.GetPayloadString("missing"); got != "" {
		t.Errorf("GetPayloadString(missing) = %v, want empty", got)
	}
	if got := evt.GetPayloadInt("path"); got != 0 {
		t.Errorf("GetPayloadInt(wrong type) = %v, want 0", got)
	}
}

func TestType_IsValid(t *testing.T) {
	valid := []Type{
		TypeRenewalInitiated,
		TypeTerminationCreated,
		TypeDecisionSubmitted,
		TypeInstanceCompleted,
		TypeInstanceRejected,
		TypeDossierUploaded,
		TypeSummaryReady,
	}
	for _, typ := range valid {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("bogus").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
