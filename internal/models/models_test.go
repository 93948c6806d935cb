package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err             error
		expectedMessage string
	}{
		{ErrAlreadyFirstItem, "item is already at the top of the column"},
		{ErrAlreadyLastItem, "item is already at the bottom of the column"},
		{ErrAlreadyLastColumn, "item is already in the last column"},
		{ErrAlreadyFirstColumn, "item is already in the first column"},
		{ErrNotFound, "not found"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expectedMessage {
			t.Errorf("Expected error message '%s', got '%s'", tt.expectedMessage, tt.err.Error())
		}
	}
}

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrAlreadyFirstItem, ErrAlreadyLastItem) {
		t.Error("ErrAlreadyFirstItem should not equal ErrAlreadyLastItem")
	}
	if errors.Is(ErrAlreadyFirstColumn, ErrAlreadyLastColumn) {
		t.Error("ErrAlreadyFirstColumn should not equal ErrAlreadyLastColumn")
	}
}

// ============================================================================
// Placement Tests
// ============================================================================

func TestCard_PlacedReturnsCopy(t *testing.T) {
	original := Card{ID: 7, ColumnID: 1, Position: 3, Title: "Write docs"}

	moved := original.Placed(2, 0)

	if moved.ColumnID != 2 || moved.Position != 0 {
		t.Errorf("Expected column 2 position 0, got column %d position %d", moved.ColumnID, moved.Position)
	}
	if original.ColumnID != 1 || original.Position != 3 {
		t.Error("Placed must not modify the receiver")
	}
	if moved.ID != 7 || moved.Title != "Write docs" {
		t.Error("Placed must keep identity and display fields")
	}
}

func TestDeal_PlacedAndTitle(t *testing.T) {
	deal := Deal{ID: 3, ColumnID: 10, Position: 1, Title: "Renewal", Company: "Acme", ValueCents: 1250050}

	moved := deal.Placed(11, 4)
	if moved.GetColumnID() != 11 || moved.GetPosition() != 4 {
		t.Errorf("Expected stage 11 position 4, got %d/%d", moved.GetColumnID(), moved.GetPosition())
	}
	if got := deal.GetTitle(); got != "Renewal · Acme" {
		t.Errorf("Expected title with company, got %q", got)
	}
	if got := deal.FormatValue(); got != "$12500.50" {
		t.Errorf("Expected $12500.50, got %s", got)
	}

	noCompany := Deal{Title: "Inbound"}
	if noCompany.GetTitle() != "Inbound" {
		t.Errorf("Expected bare title, got %q", noCompany.GetTitle())
	}
}

func TestBoardKind_Valid(t *testing.T) {
	tests := []struct {
		kind BoardKind
		want bool
	}{
		{BoardKindProject, true},
		{BoardKindPipeline, true},
		{BoardKind("chat"), false},
		{BoardKind(""), false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("BoardKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestPriorityByID(t *testing.T) {
	if p := PriorityByID(PriorityHigh); p.Description != "high" {
		t.Errorf("Expected high, got %s", p.Description)
	}
	if p := PriorityByID(99); p.ID != DefaultPriority {
		t.Errorf("Expected default priority for unknown ID, got %d", p.ID)
	}
}
