package account

import (
	"context"
	"time"

	"jobboard/internal/logger"

	"go.uber.org/zap"
)

// expiredTokenRetention keeps expired and revoked refresh tokens around for a
// day before they are purged.
const expiredTokenRetention = 24 * time.Hour

// CleanupExpiredTokens is run by the scheduler.
func (s *Service) CleanupExpiredTokens(ctx context.Context) error {
	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx, expiredTokenRetention)
	if err != nil {
		logger.Error("Failed to delete expired tokens", zap.Error(err))
		return err
	}

	logger.Debug("Expired tokens cleaned up",
		zap.Int64("deleted", deleted),
		zap.Duration("older_than", expiredTokenRetention),
	)
	return nil
}
