package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/workbridge-jp/workbridge_be/internal/models"
)

// The guard distinguishes "not logged in" from "logged in as the wrong
// identity" so handlers can answer 401 vs 403.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("not allowed for this actor")
)

type Kind string

const (
	KindAnonymous Kind = ""
	KindCandidate Kind = "candidate"
	KindCompany   Kind = "company"
)

// Actor is the verified identity of the caller, resolved from the
// session locals set by the JWT middleware — never from request bodies.
type Actor struct {
	Kind Kind
	ID   uint
}

// FromLocals builds the actor from the middleware locals. Routes
// outside the protected group yield an anonymous actor.
func FromLocals(c *fiber.Ctx) Actor {
	uid, okID := c.Locals("userId").(uint)
	role, okRole := c.Locals("role").(string)
	if !okID || !okRole || uid == 0 {
		return Actor{}
	}
	switch Kind(role) {
	case KindCandidate:
		return Actor{Kind: KindCandidate, ID: uid}
	case KindCompany:
		return Actor{Kind: KindCompany, ID: uid}
	}
	return Actor{}
}

func (a Actor) IsAnonymous() bool { return a.Kind == KindAnonymous }

// deny picks the right classification for a failed check.
func (a Actor) deny() error {
	if a.IsAnonymous() {
		return ErrUnauthorized
	}
	return ErrForbidden
}

// CanManageJob allows job update/delete and application status changes
// only for the company owning the job.
func (a Actor) CanManageJob(job *models.Job) error {
	if a.Kind == KindCompany && a.ID == job.CompanyID {
		return nil
	}
	return a.deny()
}

// CanActAsCompany covers creates where the resource will be owned by a
// company: the claimed id must be the session company itself.
func (a Actor) CanActAsCompany(companyID uint) error {
	if a.Kind == KindCompany && a.ID == companyID {
		return nil
	}
	return a.deny()
}

// CanActAsCandidate covers creates on behalf of a candidate
// (applications, profile writes).
func (a Actor) CanActAsCandidate(candidateID uint) error {
	if a.Kind == KindCandidate && a.ID == candidateID {
		return nil
	}
	return a.deny()
}

// CanViewApplication allows the applying candidate and the company
// that owns the referenced job.
func (a Actor) CanViewApplication(app *models.Application, job *models.Job) error {
	if a.Kind == KindCandidate && a.ID == app.CandidateID {
		return nil
	}
	if a.Kind == KindCompany && job != nil && a.ID == job.CompanyID {
		return nil
	}
	return a.deny()
}

// CanUseFilter binds list filters to the session: a company may only
// filter by its own companyId, a candidate by its own candidateId.
// Zero means the filter key was not supplied.
func (a Actor) CanUseFilter(companyID, candidateID uint) error {
	if companyID != 0 {
		if a.Kind != KindCompany || a.ID != companyID {
			return a.deny()
		}
	}
	if candidateID != 0 {
		if a.Kind != KindCandidate || a.ID != candidateID {
			return a.deny()
		}
	}
	return nil
}
