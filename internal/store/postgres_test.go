package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cer4sco/freesscan/internal/types"
)

func TestPostgresSinkSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM severity_levels").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "CRITICAL").AddRow(2, "HIGH").AddRow(5, "INFO"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO findings").
		WithArgs(int64(7), sql.NullInt64{Int64: 1, Valid: true}, "private_key", "Private key detected",
			"Private key detected", "id_rsa", sql.NullInt64{Int64: 1, Valid: true}, "----**", "Remove from repository, regenerate key pair").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// LOW is missing from severity_levels and falls back to INFO.
	mock.ExpectExec("INSERT INTO findings").
		WithArgs(int64(7), sql.NullInt64{Int64: 5, Valid: true}, "open_port", "Open port detected: SSH",
			"Open port detected: SSH", "h:22", sql.NullInt64{}, "SSH-2.0", "Review if SSH exposure is necessary").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE scans").WithArgs(2, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sink := NewPostgresSink(db)
	err = sink.Save(context.Background(), "7", []types.Finding{
		{Kind: "private_key", Severity: types.SevCritical, Location: "id_rsa", Line: 1, Evidence: "----**", Description: "Private key detected", Remediation: "Remove from repository, regenerate key pair"},
		{Kind: "open_port", Severity: types.SevLow, Location: "h:22", Evidence: "SSH-2.0", Description: "Open port detected: SSH", Remediation: "Review if SSH exposure is necessary", Service: "SSH"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM severity_levels").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "INFO"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO findings").WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err = NewPostgresSink(db).Save(context.Background(), "1", []types.Finding{{Kind: "x", Severity: types.SevInfo}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkRejectsNonIntegerScanID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	err = NewPostgresSink(db).Save(context.Background(), "nightly", nil)
	assert.ErrorContains(t, err, "integer scan id")
}
