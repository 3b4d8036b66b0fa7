package align

import (
	biofabric "github.com/biofabric/biofabric/pkg/errors"
	"github.com/biofabric/biofabric/pkg/progress"
)

func ensureMonitor(mon *progress.Monitor, total int) *progress.Monitor {
	if mon != nil {
		return mon
	}
	return progress.New(nil, total)
}

func cancelled(op string) *biofabric.Error {
	return biofabric.New(biofabric.ErrCodeCancelled, "%s: alignment merge cancelled", op)
}
