package obs

import (
	"context"
	"log"
	"time"
)

// Time logs the duration of an operation when the returned func runs,
// including the error the operation finished with, if any.
//
// Usage:
//
//	func (r *Repo) ListGeocoded(ctx context.Context) (_ []domain.Station, err error) {
//		defer obs.Time(ctx, "stations.ListGeocoded")(&err)
//		...
//	}
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("op=%s dur=%dms err=%v", name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("op=%s dur=%dms", name, dur.Milliseconds())
	}
}
