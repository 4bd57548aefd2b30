package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrespondenceDAO_Insert(t *testing.T) {
	t.Parallel()
	gdb, mock := newMockDB(t)
	d := NewCorrespondenceDAO(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `correspondences`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, err := d.Insert(context.Background(), Correspondence{
		ID:        2001,
		CaseID:    "SC001/01/000001",
		EventType: "appealReceived",
		Channel:   "EMAIL",
		Recipient: "appellant@example.com",
		Body:      []byte("body"),
		SentAt:    time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.NotZero(t, c.Ctime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCorrespondenceDAO_FindByCaseID(t *testing.T) {
	t.Parallel()
	gdb, mock := newMockDB(t)
	d := NewCorrespondenceDAO(gdb)

	now := time.Now().UnixMilli()
	rows := sqlmock.NewRows([]string{"id", "case_id", "event_type", "channel", "recipient", "sender", "body", "reasonable_adjustment", "sent_at", "ctime", "utime"}).
		AddRow(2001, "SC001/01/000001", "appealReceived", "EMAIL", "appellant@example.com", "tribunal", []byte("body"), false, now, now, now)

	mock.ExpectQuery("SELECT \\* FROM `correspondences`").
		WillReturnRows(rows)

	got, err := d.FindByCaseID(context.Background(), "SC001/01/000001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EMAIL", got[0].Channel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
