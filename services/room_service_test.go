package services

import (
	"testing"

	"github.com/heshan2021/ai-pms-saas-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoom(t *testing.T) {
	t.Run("success with default status", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `rooms`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		room, err := svc.Create("  101 ", "")

		require.NoError(t, err)
		assert.Equal(t, uint(1), room.ID)
		assert.Equal(t, "101", room.Name, "name is trimmed")
		assert.Equal(t, models.RoomAvailable, room.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty name", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := NewRoomService(db)

		_, err := svc.Create("   ", models.RoomAvailable)

		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "name", missingErr.Field)
	})

	t.Run("unknown status", func(t *testing.T) {
		db, _ := newTestDB(t)
		svc := NewRoomService(db)

		_, err := svc.Create("101", models.RoomStatus("Haunted"))

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "status", validationErr.Field)
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `rooms`").
			WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry '101' for key 'idx_rooms_name'"})
		mock.ExpectRollback()

		_, err := svc.Create("101", models.RoomAvailable)

		assert.ErrorIs(t, err, ErrDuplicateRoomName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetAllRoomsOrderedByID(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewRoomService(db)

	mock.ExpectQuery("SELECT (.+) FROM `rooms`(.+)ORDER BY id ASC").
		WillReturnRows(roomRows().
			AddRow(1, "101", "Available").
			AddRow(2, "102", "Maintenance"))

	rooms, err := svc.GetAll()

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].Name)
	assert.Equal(t, models.RoomMaintenance, rooms[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoom(t *testing.T) {
	t.Run("partial update keeps previous values", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows().AddRow(1, "101", "Available"))
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `rooms`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		status := models.RoomOccupied
		room, err := svc.Update(1, nil, &status)

		require.NoError(t, err)
		assert.Equal(t, "101", room.Name, "name unchanged")
		assert.Equal(t, models.RoomOccupied, room.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows())

		name := "102"
		_, err := svc.Update(99, &name, nil)

		assert.ErrorIs(t, err, ErrRoomNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid status", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows().AddRow(1, "101", "Available"))

		status := models.RoomStatus("Condemned")
		_, err := svc.Update(1, nil, &status)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "status", validationErr.Field)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("blocked while bookings remain", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows().AddRow(1, "101", "Available"))
		mock.ExpectQuery("SELECT count(.+) FROM `bookings`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		err := svc.Delete(1)

		assert.ErrorIs(t, err, ErrRoomHasBookings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes when only cancelled bookings remain", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows().AddRow(1, "101", "Available"))
		mock.ExpectQuery("SELECT count(.+) FROM `bookings`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectBegin()
		// soft delete sets deleted_at
		mock.ExpectExec("UPDATE `rooms`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, svc.Delete(1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		db, mock := newTestDB(t)
		svc := NewRoomService(db)

		mock.ExpectQuery("SELECT (.+) FROM `rooms`").
			WillReturnRows(roomRows())

		err := svc.Delete(404)

		assert.ErrorIs(t, err, ErrRoomNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
