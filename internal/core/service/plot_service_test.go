package service

import (
	"context"
	"errors"
	"testing"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

func plotInput(city string) ports.CreatePlotInput {
	return ports.CreatePlotInput{
		Title:       "Backyard plot",
		Description: "Quiet corner with morning sun",
		Location: ports.LocationInput{
			Address: "12 Garden Lane",
			City:    city,
			State:   "Kerala",
			Pincode: "682001",
		},
		Size:              ports.SizeInput{Value: 500, Unit: "sqft"},
		SoilType:          "loamy",
		WaterAvailability: "available",
		Amenities:         []string{"fencing", "tool shed"},
	}
}

func TestPlotService_Create_StartsPendingAndAvailable(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	created, err := svc.Create(context.Background(), "owner_1", plotInput("Kochi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OwnerID != "owner_1" {
		t.Errorf("owner not set: %q", created.OwnerID)
	}
	if created.VerificationStatus != domain.VerificationPending {
		t.Errorf("new plots must start pending, got %q", created.VerificationStatus)
	}
	if !created.IsAvailable {
		t.Error("new plots must start available")
	}
	if created.Bookable() {
		t.Error("unverified plots must not be bookable")
	}
}

func TestPlotService_Search_OnlyBookablePlots(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	plots.byID["p1"] = &domain.Plot{ID: "p1", IsAvailable: true, VerificationStatus: domain.VerificationApproved, Location: domain.Location{City: "Kochi"}}
	plots.byID["p2"] = &domain.Plot{ID: "p2", IsAvailable: false, VerificationStatus: domain.VerificationApproved, Location: domain.Location{City: "Kochi"}}
	plots.byID["p3"] = &domain.Plot{ID: "p3", IsAvailable: true, VerificationStatus: domain.VerificationPending, Location: domain.Location{City: "Kochi"}}

	found, err := svc.Search(context.Background(), ports.PlotSearchFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "p1" {
		t.Errorf("expected only p1, got %+v", found)
	}
}

func TestPlotService_Search_Filters(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	plots.byID["p1"] = &domain.Plot{
		ID: "p1", IsAvailable: true, VerificationStatus: domain.VerificationApproved,
		Location: domain.Location{City: "Kochi"}, SoilType: domain.SoilLoamy,
		WaterAvailability: domain.WaterAvailable, Size: domain.Size{Value: 500, Unit: domain.UnitSqft},
	}
	plots.byID["p2"] = &domain.Plot{
		ID: "p2", IsAvailable: true, VerificationStatus: domain.VerificationApproved,
		Location: domain.Location{City: "Chennai"}, SoilType: domain.SoilClay,
		WaterAvailability: domain.WaterLimited, Size: domain.Size{Value: 2000, Unit: domain.UnitSqft},
	}

	cases := []struct {
		name   string
		filter ports.PlotSearchFilter
		want   []string
	}{
		{"city substring, case-insensitive", ports.PlotSearchFilter{City: "koch"}, []string{"p1"}},
		{"soil type", ports.PlotSearchFilter{SoilType: "clay"}, []string{"p2"}},
		{"water", ports.PlotSearchFilter{WaterAvailability: "available"}, []string{"p1"}},
		{"min size", ports.PlotSearchFilter{MinSize: 1000}, []string{"p2"}},
		{"max size", ports.PlotSearchFilter{MaxSize: 1000}, []string{"p1"}},
		{"no match", ports.PlotSearchFilter{City: "Delhi"}, nil},
	}
	for _, tc := range cases {
		found, err := svc.Search(context.Background(), tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(found) != len(tc.want) {
			t.Errorf("%s: expected %d plots, got %d", tc.name, len(tc.want), len(found))
			continue
		}
		for i, id := range tc.want {
			if found[i].ID != id {
				t.Errorf("%s: expected %q, got %q", tc.name, id, found[i].ID)
			}
		}
	}
}

func TestPlotService_Update_OwnerOnly(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	created, _ := svc.Create(context.Background(), "owner_1", plotInput("Kochi"))

	input := ports.UpdatePlotInput{
		Title:             "Bigger backyard plot",
		Description:       created.Description,
		Location:          ports.LocationInput{Address: "12 Garden Lane", City: "Kochi", State: "Kerala", Pincode: "682001"},
		Size:              ports.SizeInput{Value: 650, Unit: "sqft"},
		SoilType:          "loamy",
		WaterAvailability: "limited",
	}

	if _, err := svc.Update(context.Background(), created.ID, "owner_2", input); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner update: expected ErrForbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, "owner_1", input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Bigger backyard plot" || updated.Size.Value != 650 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.WaterAvailability != domain.WaterLimited {
		t.Errorf("water availability not applied: %q", updated.WaterAvailability)
	}
}

func TestPlotService_Delete_OwnerOnly(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	plots.byID["p1"] = &domain.Plot{ID: "p1", OwnerID: "owner_1"}

	if err := svc.Delete(context.Background(), "p1", "owner_2"); !errors.Is(err, domain.ErrPlotNotFound) {
		t.Errorf("non-owner delete must read as not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), "p1", "owner_1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := plots.byID["p1"]; ok {
		t.Error("plot should be gone")
	}
}

func TestPlotService_ReplaceDocuments(t *testing.T) {
	plots := newStubPlotRepo()
	svc := NewPlotService(plots, discardLogger)

	plots.byID["p1"] = &domain.Plot{
		ID: "p1", OwnerID: "owner_1",
		Documents: []domain.PlotDocument{{Name: "old.pdf", URL: "/uploads/old.pdf", Type: domain.DocOther}},
	}

	updated, err := svc.ReplaceDocuments(context.Background(), "p1", "owner_1", []ports.PlotDocumentInput{
		{Name: "deed.pdf", URL: "/uploads/deed.pdf", Type: "ownership"},
		{Name: "bill.pdf", URL: "/uploads/bill.pdf"}, // untyped defaults to other
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Documents) != 2 {
		t.Fatalf("documents must be replaced, not appended: got %d", len(updated.Documents))
	}
	if updated.Documents[0].Type != domain.DocOwnership {
		t.Errorf("expected ownership type, got %q", updated.Documents[0].Type)
	}
	if updated.Documents[1].Type != domain.DocOther {
		t.Errorf("untyped document must default to other, got %q", updated.Documents[1].Type)
	}
}
