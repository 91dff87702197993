package booking

import (
	"context"
	"time"

	"bookwise/utils"

	"go.uber.org/zap"
)

// ensureNoOverlap rejects [start, end) when it intersects any scheduled booking of
// the owner other than excludeID. Touching intervals do not intersect.
func (s *DefaultBookingService) ensureNoOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID string) error {
	clashes, err := s.repo.FindOverlapping(ctx, ownerID, start, end, excludeID)
	if err != nil {
		return transient("check overlapping bookings", err)
	}
	if len(clashes) > 0 {
		utils.GetLogger().Debug("Booking overlap rejected",
			zap.String("userId", ownerID),
			zap.String("conflictsWith", clashes[0].ID))
		return ErrOverlapConflict
	}
	return nil
}
