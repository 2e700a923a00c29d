package model

import "testing"

func TestParsePropertyType(t *testing.T) {
	if _, err := ParsePropertyType("RESIDENTIAL"); err != nil {
		t.Errorf("ParsePropertyType(RESIDENTIAL) unexpected error: %v", err)
	}
	if _, err := ParsePropertyType("CONDO"); err != nil {
		t.Errorf("ParsePropertyType(CONDO) unexpected error: %v", err)
	}
	if _, err := ParsePropertyType("residential"); err == nil {
		t.Error("ParsePropertyType() should be case sensitive")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("REALTOR"); err != nil || r != RoleRealtor {
		t.Errorf("ParseRole(REALTOR) = %q, %v", r, err)
	}
	if _, err := ParseRole("ADMIN"); err == nil {
		t.Error("ParseRole(ADMIN) expected error")
	}
}

func TestSummaryKeepsFirstImage(t *testing.T) {
	l := Listing{ID: 2, City: "London", Images: []string{"img/1.com", "img/2.com"}}

	if got := l.Summary().Image; got != "img/1.com" {
		t.Errorf("Summary().Image = %q, want %q", got, "img/1.com")
	}

	l.Images = nil
	if got := l.Summary().Image; got != "" {
		t.Errorf("Summary().Image = %q, want empty", got)
	}
}

func TestDetailNeverReturnsNilImages(t *testing.T) {
	l := Listing{ID: 2}
	if l.Detail().Images == nil {
		t.Fatal("Detail().Images should be an empty slice, not nil")
	}
}

func TestEmptyFilterAndPatch(t *testing.T) {
	if !(ListingFilter{}).IsEmpty() {
		t.Error("zero ListingFilter should be empty")
	}
	city := "London"
	if (ListingFilter{City: &city}).IsEmpty() {
		t.Error("filter with city should not be empty")
	}
	if !(ListingPatch{}).IsEmpty() {
		t.Error("zero ListingPatch should be empty")
	}
	if (UpdateListingRequest{City: &city}).Patch().IsEmpty() {
		t.Error("patch with city should not be empty")
	}
}
