package queue

import (
	"fmt"
	"time"
)

// Job is the wire schema of one queued review request. It is a delivery
// vehicle only: review lifecycle state lives in the review store, never
// in the queue.
type Job struct {
	ReviewID     string   `json:"reviewId"`
	AWSAccountID string   `json:"awsAccountId"`
	Region       string   `json:"region"`
	Pillars      []string `json:"pillars"`
	Timestamp    string   `json:"timestamp"`
}

// Message wraps a Job with its delivery envelope. MessageID identifies one
// delivery for batch failure reporting; Attributes carry the reviewId for
// filtering and metrics without unmarshalling the body.
type Message struct {
	MessageID  string            `json:"message_id"`
	Job        Job               `json:"body"`
	Attributes map[string]string `json:"attributes,omitempty"`
	EnqueuedAt int64             `json:"enqueued_at"`

	// raw is the exact list entry this message was delivered from, set by
	// Receive. Ack and Requeue use it to remove the entry from the
	// processing list.
	raw string
}

// IsValid checks that the job has all required fields populated.
func (j *Job) IsValid() error {
	if j.ReviewID == "" {
		return fmt.Errorf("reviewId is required")
	}
	if j.AWSAccountID == "" {
		return fmt.Errorf("awsAccountId is required")
	}
	if j.Region == "" {
		return fmt.Errorf("region is required")
	}
	if j.Timestamp == "" {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// Age returns the duration since the message was enqueued.
func (m *Message) Age() time.Duration {
	if m.EnqueuedAt <= 0 {
		return 0
	}
	now := time.Now().UnixMilli()
	return time.Duration(now-m.EnqueuedAt) * time.Millisecond
}
