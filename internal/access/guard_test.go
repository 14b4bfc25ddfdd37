package access

import (
	"testing"

	"github.com/workbridge-jp/workbridge_be/internal/models"
)

func TestCanManageJob(t *testing.T) {
	job := &models.Job{ID: 3, CompanyID: 1}

	cases := []struct {
		name  string
		actor Actor
		want  error
	}{
		{"owner", Actor{Kind: KindCompany, ID: 1}, nil},
		{"other company", Actor{Kind: KindCompany, ID: 2}, ErrForbidden},
		{"candidate", Actor{Kind: KindCandidate, ID: 1}, ErrForbidden},
		{"anonymous", Actor{}, ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.actor.CanManageJob(job); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanActAs(t *testing.T) {
	cand := Actor{Kind: KindCandidate, ID: 7}
	comp := Actor{Kind: KindCompany, ID: 7}

	if err := cand.CanActAsCandidate(7); err != nil {
		t.Fatalf("own id: %v", err)
	}
	if err := cand.CanActAsCandidate(8); err != ErrForbidden {
		t.Fatalf("other id: got %v", err)
	}
	// same numeric id, wrong kind
	if err := comp.CanActAsCandidate(7); err != ErrForbidden {
		t.Fatalf("company as candidate: got %v", err)
	}
	if err := comp.CanActAsCompany(7); err != nil {
		t.Fatalf("own company id: %v", err)
	}
}

func TestCanViewApplication(t *testing.T) {
	app := &models.Application{ID: 10, JobID: 3, CandidateID: 7}
	job := &models.Job{ID: 3, CompanyID: 1}

	cases := []struct {
		name  string
		actor Actor
		want  error
	}{
		{"applying candidate", Actor{Kind: KindCandidate, ID: 7}, nil},
		{"owning company", Actor{Kind: KindCompany, ID: 1}, nil},
		{"other candidate", Actor{Kind: KindCandidate, ID: 8}, ErrForbidden},
		{"other company", Actor{Kind: KindCompany, ID: 2}, ErrForbidden},
		{"anonymous", Actor{}, ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.actor.CanViewApplication(app, job); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanUseFilter(t *testing.T) {
	comp := Actor{Kind: KindCompany, ID: 1}
	cand := Actor{Kind: KindCandidate, ID: 7}

	if err := comp.CanUseFilter(1, 0); err != nil {
		t.Fatalf("own company filter: %v", err)
	}
	if err := comp.CanUseFilter(2, 0); err != ErrForbidden {
		t.Fatalf("foreign company filter: got %v", err)
	}
	if err := comp.CanUseFilter(0, 7); err != ErrForbidden {
		t.Fatalf("company using candidate filter: got %v", err)
	}
	if err := cand.CanUseFilter(0, 7); err != nil {
		t.Fatalf("own candidate filter: %v", err)
	}
	if err := (Actor{}).CanUseFilter(1, 0); err != ErrUnauthorized {
		t.Fatalf("anonymous filter: got %v", err)
	}
}
