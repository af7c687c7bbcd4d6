package card

import (
	"github.com/google/uuid"

	"github.com/matzehuels/opsboard/pkg/errors"
)

// EntityFunnel is the entity key carrying the funnel instance id.
const EntityFunnel = "funnel"

// ScopeFor returns the scope key partitioning persisted order state for a view.
//
// The dashboard has a single fixed scope. Funnel panels are scoped per funnel
// instance, so ctx must carry a UUID under EntityFunnel.
func ScopeFor(view string, ctx Context) (string, error) {
	switch normalize(view) {
	case ViewDashboard:
		return ViewDashboard, nil
	case ViewFunnel:
		raw := ctx.Value(EntityFunnel)
		if raw == "" {
			return "", errors.New(errors.ErrCodeInvalidScope, "funnel view requires a funnel id")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidScope, err, "invalid funnel id %q", raw)
		}
		return ViewFunnel + ":" + id.String(), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidView, "unknown view %q", view)
	}
}
