package obs

import (
	"context"
	"time"
)

// Time logs the duration of an operation. Use as:
//
//	defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		l := FromContext(ctx)

		if errp != nil && *errp != nil {
			l.Warn().Str("op", name).Dur("dur", dur).Err(*errp).Msg("op failed")
			return
		}
		l.Debug().Str("op", name).Dur("dur", dur).Msg("op done")
	}
}
