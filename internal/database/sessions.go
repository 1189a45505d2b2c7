package database

import (
	"time"

	"github.com/jrabinat-art/agenda/internal/models"

	"gorm.io/gorm"
)

// PurgeExpiredSessions deletes sessions that are revoked or past expiry.
// Run periodically so the session table stays small.
func PurgeExpiredSessions(db *gorm.DB) (int64, error) {
	res := db.Where("revoked = ? OR expires_at < ?", true, time.Now()).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
