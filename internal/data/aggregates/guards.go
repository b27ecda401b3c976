package aggregates

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/dbctx"
)

// Guard checks row preconditions from inside an aggregate transaction.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) Guard {
	return Guard{db: db}
}

func (g Guard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx == nil && g.db == nil {
		return nil, ValidationError("missing db transaction context")
	}
	return dbc.Conn(g.db), nil
}

// Exists reports whether table holds a row with the given id.
func (g Guard) Exists(dbc dbctx.Context, table string, id int64) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id <= 0 {
		return false, ValidationError("table and positive id are required for Exists")
	}
	var n int64
	if err := db.Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// RequireExists converts a failed existence check into a not-found error.
func RequireExists(ok bool, op, what string, id int64) error {
	if ok {
		return nil
	}
	return apierr.NotFound(op, "%s %d does not exist", what, id)
}
