package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/homeauctiondeals/gateway/internal/model"
)

const (
	// TaskEnquiryNotify is the job type name stored in Redis.
	TaskEnquiryNotify = "enquiry:notify"
)

// EnquiryNotificationPayload is the JSON payload of an enquiry:notify task.
type EnquiryNotificationPayload struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Description  string `json:"description"`
	Notification bool   `json:"notification"`
}

func (p EnquiryNotificationPayload) Enquiry() model.Enquiry {
	return model.Enquiry{
		FullName:     p.FullName,
		Phone:        p.Phone,
		Email:        p.Email,
		Description:  p.Description,
		Notification: p.Notification,
	}
}

// NewEnquiryNotificationTask builds the task for e. It is retried up to 3
// times and killed after 30 seconds.
func NewEnquiryNotificationTask(e model.Enquiry) (*asynq.Task, error) {
	payload, err := json.Marshal(EnquiryNotificationPayload{
		FullName:     e.FullName,
		Phone:        e.Phone,
		Email:        e.Email,
		Description:  e.Description,
		Notification: e.Notification,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEnquiryNotify,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
