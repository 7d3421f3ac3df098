package parsers

import (
	"strings"
	"testing"

	"github.com/vserve-support/server/internal/agent/model"
)

func TestStripReasoning(t *testing.T) {
	in := "<think>internal chain\nof thought</think>Hello there!"
	if got := StripReasoning(in); got != "Hello there!" {
		t.Errorf("StripReasoning = %q", got)
	}
}

func TestStripReasoningWithAttributes(t *testing.T) {
	in := "<think depth=\"2\">hidden</think>Visible <think>more</think>text"
	got := StripReasoning(in)
	if strings.Contains(got, "hidden") || strings.Contains(got, "more") {
		t.Errorf("reasoning leaked: %q", got)
	}
	if !strings.Contains(got, "Visible") || !strings.Contains(got, "text") {
		t.Errorf("visible text lost: %q", got)
	}
}

func TestScanMarkers(t *testing.T) {
	sig := ScanMarkers("please confirm <needs_details> and later <needs_time>")
	if !sig.NeedsDetails || !sig.NeedsTime {
		t.Errorf("markers missed: %+v", sig)
	}
	if sig.NeedsDetailsUpdate || sig.NeedsTicket {
		t.Errorf("phantom markers: %+v", sig)
	}
}

func TestScanMarkersUpdateIsNotDetails(t *testing.T) {
	// <needs_details_update> contains "<needs_details" as a prefix but the
	// details marker requires its closing bracket.
	sig := ScanMarkers("x <needs_details_update> y")
	if sig.NeedsDetails {
		t.Error("update marker misread as details marker")
	}
	if !sig.NeedsDetailsUpdate {
		t.Error("update marker missed")
	}
}

func TestStripMarkers(t *testing.T) {
	in := "Done. <needs_details> <needs_details_update> <needs_time> <needs_ticket> Bye."
	got := StripMarkers(in)
	if strings.Contains(got, "<needs_") {
		t.Errorf("marker survived: %q", got)
	}
	// duplicated markers are tolerated
	got = StripMarkers("<needs_time><needs_time>ok")
	if got != "ok" {
		t.Errorf("StripMarkers = %q", got)
	}
}

func TestSubstitutePlaceholders(t *testing.T) {
	draft := &model.TicketDraft{
		FirstName:     "John",
		LastName:      "Doe",
		Address:       "123 Main St",
		ContactNumber: "555-1234",
	}
	in := "Details: [First Name] [last name] [ADDRESS] [Contact Number]."
	got := SubstitutePlaceholders(in, draft)
	for _, want := range []string{"John", "Doe", "123 Main St", "555-1234"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "[") {
		t.Errorf("bracketed token remains: %q", got)
	}
}

func TestSubstitutePlaceholdersNilDraft(t *testing.T) {
	in := "Hello [First Name]"
	if got := SubstitutePlaceholders(in, nil); got != in {
		t.Errorf("nil draft should leave text untouched, got %q", got)
	}
}
