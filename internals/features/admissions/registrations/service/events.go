package service

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"baetelanshar_backend/internals/configs"
)

// GuardianEvent: pesan notifikasi untuk wali, dikonsumsi worker
// pengirim email/WA di luar service ini.
type GuardianEvent struct {
	Type           string `json:"type"`
	RegistrationID string `json:"registration_id,omitempty"`
	ParentEmail    string `json:"parent_email"`
	StudentName    string `json:"student_name,omitempty"`
	Status         string `json:"status,omitempty"`
	Message        string `json:"message,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

const (
	EventRegistrationCreated = "registration.created"
	EventStatusChanged       = "registration.status_changed"
	EventRevisionRequested   = "registration.revision_requested"
	EventInterviewScheduled  = "registration.interview_scheduled"
)

// Notifier menulis event wali ke Kafka. Nil receiver berarti Kafka
// tidak dikonfigurasi; semua publish jadi no-op.
type Notifier struct {
	writer *kafka.Writer
	topic  string
}

// NewNotifierFromEnv membangun notifier dari KAFKA_BROKERS (comma
// separated). Mengembalikan nil bila env kosong; notifikasi memang
// opsional dan tidak boleh menahan alur pendaftaran.
func NewNotifierFromEnv() *Notifier {
	brokers := strings.TrimSpace(configs.GetEnv("KAFKA_BROKERS", ""))
	if brokers == "" {
		log.Println("[EVENTS] KAFKA_BROKERS kosong, notifikasi wali dimatikan")
		return nil
	}
	topic := configs.GetEnv("KAFKA_TOPIC_GUARDIAN", "guardian-notifications")

	transport := &kafka.Transport{DialTimeout: 5 * time.Second}
	if user := configs.GetEnv("KAFKA_SASL_USER", ""); user != "" {
		transport.SASL = plain.Mechanism{
			Username: user,
			Password: configs.GetEnv("KAFKA_SASL_PASSWORD", ""),
		}
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport:    transport,
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("[EVENTS] notifier aktif, topic=%s", topic)
	return &Notifier{writer: writer, topic: topic}
}

// Publish mengirim satu event, best-effort. Gagal kirim hanya dicatat;
// status pendaftaran tetap berubah.
func (n *Notifier) Publish(ctx context.Context, event GuardianEvent) {
	if n == nil || n.writer == nil {
		return
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[EVENTS] marshal %s gagal: %v", event.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ParentEmail),
		Value: payload,
	})
	if err != nil {
		log.Printf("[EVENTS] publish %s gagal: %v", event.Type, err)
	}
}

func (n *Notifier) Close() error {
	if n == nil || n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
