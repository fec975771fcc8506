package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Validasi input aksi admin dicek sebelum menyentuh DB, jadi bisa
// diuji dengan service kosong.

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := &AdminService{}
	_, err := svc.UpdateStatus(context.Background(), nil, uuid.New(), "graduated", nil)
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestSendRevision_RequiresNotes(t *testing.T) {
	svc := &AdminService{}
	for _, notes := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendRevision(context.Background(), nil, uuid.New(), notes)
		require.ErrorIs(t, err, ErrEmptyRevisionNotes)
	}
}

func TestSendInterview_RequiresDateAndLink(t *testing.T) {
	svc := &AdminService{}
	adminID := uuid.New()

	_, err := svc.SendInterview(context.Background(), &adminID, uuid.New(), time.Time{}, "https://meet.example.com/x", nil)
	require.ErrorIs(t, err, ErrIncompleteInterview)

	_, err = svc.SendInterview(context.Background(), &adminID, uuid.New(), time.Now(), "   ", nil)
	require.ErrorIs(t, err, ErrIncompleteInterview)
}
