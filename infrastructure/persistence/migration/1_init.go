package migration

import (
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	createBtreeGist = `CREATE EXTENSION IF NOT EXISTS btree_gist`

	addIntervalCheck = `
DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_valid_interval') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_valid_interval CHECK (start_time < end_time);
	END IF;
END $$;`

	// Half-open ranges so back-to-back bookings never collide.
	addNoOverlap = `
DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (meeting_room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&);
	END IF;
END $$;`
)

func Up1(db *gorm.DB, log *logger.Logger) error {
	if err := createTables(db); err != nil {
		return err
	}

	if err := db.Exec(addIntervalCheck).Error; err != nil {
		return errors.Wrap(err, "add interval check")
	}

	// The in-process overlap check still runs when the extension is unavailable.
	if err := db.Exec(createBtreeGist).Error; err != nil {
		log.Warn("btree_gist unavailable, skipping booking exclusion constraint")
		return nil
	}
	if err := db.Exec(addNoOverlap).Error; err != nil {
		return errors.Wrap(err, "add booking exclusion constraint")
	}

	log.Info("Tables Created")
	return nil
}

func createTables(db *gorm.DB) error {
	tables := []any{
		&model.User{},
		&model.MeetingRoom{},
		&model.RoomMembership{},
		&model.Booking{},
		&model.BookingParticipant{},
		&model.AuditLog{},
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return errors.Wrap(err, "migrate tables")
	}
	return nil
}
