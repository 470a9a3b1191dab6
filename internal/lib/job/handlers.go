package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleEnquiryNotificationTask emails the team about a new enquiry.
// Returning an error makes asynq schedule a retry, except for payloads
// that cannot be decoded, which are archived at once.
func (j *JobService) handleEnquiryNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p EnquiryNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal enquiry notification payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskEnquiryNotify).
		Str("to", j.notifyTo).
		Logger()

	log.Info().Msg("processing enquiry notification task")

	if err := j.mailer.SendEnquiryNotification(ctx, j.notifyTo, p.Enquiry()); err != nil {
		log.Error().Err(err).Msg("failed to send enquiry notification")
		return err
	}

	log.Info().Msg("sent enquiry notification")
	return nil
}
