package repository

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

var drugRowColumns = []string{
	"id", "name", "description", "composition", "price", "stock",
	"category_id", "category_name", "manufacturer", "dosage",
	"side_effects", "contraindications", "image_url", "requires_prescription",
	"created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *logrus.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return db, mock, logger
}

// paracetamolRow returns the driver values of a fully populated drug row.
func paracetamolRow() []driver.Value {
	return []driver.Value{
		int64(1), "Paracetamol 500mg", "Obat penurun demam dan pereda nyeri", "Paracetamol 500mg", "15000.00", int64(100),
		int64(1), "Obat Demam", "Kimia Farma", "3x1 tablet per hari",
		"{Mual,Muntah,\"Ruam kulit\"}", "{\"Gangguan hati berat\"}", "/api/placeholder/300/300", false,
		fixedTime, fixedTime,
	}
}

// sparseRow has every nullable column NULL.
func sparseRow(id int64, name string) []driver.Value {
	return []driver.Value{
		id, name, nil, nil, "1.50", int64(0),
		nil, nil, nil, nil,
		nil, nil, nil, true,
		fixedTime, fixedTime,
	}
}
