package domain

import "testing"

func TestBookingStatus_Transitions(t *testing.T) {
	all := []BookingStatus{
		BookingPending, BookingApproved, BookingRejected,
		BookingCompleted, BookingCancelled,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingPending: {
			BookingApproved:  true,
			BookingRejected:  true,
			BookingCancelled: true,
		},
		BookingApproved: {
			BookingCompleted: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	cases := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingPending, false},
		{BookingApproved, false},
		{BookingRejected, true},
		{BookingCompleted, true},
		{BookingCancelled, true},
	}
	for _, tc := range cases {
		if got := tc.status.Terminal(); got != tc.want {
			t.Errorf("%s.Terminal(): got %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestBooking_CanBeReadBy(t *testing.T) {
	b := &Booking{GardenerID: "g1", LandownerID: "l1"}

	cases := []struct {
		name   string
		userID string
		role   Role
		want   bool
	}{
		{"gardener owner", "g1", RoleGardener, true},
		{"landowner owner", "l1", RoleLandowner, true},
		{"admin", "someone", RoleAdmin, true},
		{"other gardener", "g2", RoleGardener, false},
		{"other landowner", "l2", RoleLandowner, false},
	}
	for _, tc := range cases {
		if got := b.CanBeReadBy(tc.userID, tc.role); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleGardener, RoleLandowner, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestVerificationStatus_Valid(t *testing.T) {
	for _, v := range []VerificationStatus{VerificationPending, VerificationApproved, VerificationRejected} {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if VerificationStatus("unknown").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestPlot_Bookable(t *testing.T) {
	cases := []struct {
		available bool
		status    VerificationStatus
		want      bool
	}{
		{true, VerificationApproved, true},
		{false, VerificationApproved, false},
		{true, VerificationPending, false},
		{true, VerificationRejected, false},
		{false, VerificationPending, false},
	}
	for _, tc := range cases {
		p := &Plot{IsAvailable: tc.available, VerificationStatus: tc.status}
		if got := p.Bookable(); got != tc.want {
			t.Errorf("available=%v status=%s: got %v, want %v", tc.available, tc.status, got, tc.want)
		}
	}
}
