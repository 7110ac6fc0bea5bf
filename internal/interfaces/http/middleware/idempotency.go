package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/cache"
	"github.com/posadmin/backoffice/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the per-form-open submission key generated
// by the browser.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// DefaultIdempotencyTTL bounds how long a claimed key blocks resubmission.
const DefaultIdempotencyTTL = 24 * time.Hour

// submissionCommittedKey marks requests whose mutation succeeded, so the
// guard knows to keep the claim.
const submissionCommittedKey = "submission_committed"

// MarkSubmissionCommitted records that the guarded mutation succeeded and
// its idempotency key must stay claimed. Handlers call this on success;
// without it the claim is released so the user can resubmit the form.
func MarkSubmissionCommitted(c *gin.Context) {
	c.Set(submissionCommittedKey, true)
}

// Idempotency deduplicates form submissions. The first request carrying a
// given key claims it; a duplicate gets an error envelope without reaching
// the upstream API. Requests without a key pass through unguarded, so
// older form clients keep working.
//
// The key is generated per form-open and manual resubmission is the only
// retry path, so a claim outlives the request only when the mutation
// committed. Failed mutations release the key again.
//
// A store failure fails open: rejecting a legitimate submission is worse
// than letting a rare duplicate through.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		claimed, err := store.Claim(c.Request.Context(), key, ttl)
		if err != nil {
			logger.Warn("Idempotency claim failed, allowing request",
				zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeDuplicateSubmit),
				dto.NewErrorResponse("This form was already submitted", &dto.ErrorInfo{
					Code:      dto.ErrCodeDuplicateSubmit,
					RequestID: GetRequestID(c),
				}))
			return
		}

		c.Next()

		if !c.GetBool(submissionCommittedKey) {
			if err := store.Release(c.Request.Context(), key); err != nil {
				logger.Warn("Idempotency release failed, retry blocked until TTL",
					zap.String("key", key), zap.Error(err))
			}
		}
	}
}
