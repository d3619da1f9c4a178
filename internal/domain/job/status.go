// Package job holds the pure rules of the job lifecycle: the status domain,
// the financial derivation shared by every read path and the transition policy.
package job

import (
	"strings"

	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// ParseStatus accepts only the seven known statuses.
func ParseStatus(s string) (entity.JobStatus, error) {
	st := entity.JobStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range entity.JobStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", domain.Invalid("status", "unknown status "+s)
}

// IsFinished reports whether entering st stamps completed_at.
func IsFinished(st entity.JobStatus) bool {
	switch st {
	case entity.JobCompleted, entity.JobDelivered, entity.JobClosed:
		return true
	}
	return false
}
