// Package journal keeps the committed events of the farm in a SQL database
// so the activity of a manager, a crop or an account can be listed.
package journal

import (
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/core/types"
)

// Entry is a row of the journal.
// Amounts are kept as decimal strings because SQL integers are signed.
type Entry struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"index" json:"name"`
	Timestamp uint64 `gorm:"index" json:"timestamp"`
	Contract  string `json:"contract"`
	Manager   string `gorm:"index:idx_crop" json:"manager"`
	CropID    uint64 `gorm:"index:idx_crop" json:"crop_id"`
	Account   string `gorm:"index" json:"account"`
	To        string `json:"to"`
	Asset     string `json:"asset"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Reward    string `json:"reward"`
}

func (Entry) TableName() string {
	return "journal_entries"
}

func newEntry(ev *types.Event) *Entry {
	return &Entry{
		Name:      ev.Name,
		Timestamp: ev.Timestamp,
		Contract:  ev.Contract.String(),
		Manager:   ev.Manager.String(),
		CropID:    ev.CropID,
		Account:   ev.Account.String(),
		To:        ev.To.String(),
		Asset:     ev.Asset.String(),
		Amount:    strconv.FormatUint(ev.Amount, 10),
		Fee:       strconv.FormatUint(ev.Fee, 10),
		Reward:    strconv.FormatUint(ev.Reward, 10),
	}
}

// Query selects entries, zero fields match everything
type Query struct {
	Name    string
	Manager common.Address
	CropID  *uint64
	Account common.Address
	Offset  int
	Limit   int
}

const maxLimit = 1000

// Journal stores the events of committed operations
type Journal struct {
	db  *gorm.DB
	log *logrus.Entry
}

// Open opens the sqlite journal at the path
func Open(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return New(db)
}

// New returns the journal over the database and migrates its table
func New(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Journal{
		db:  db,
		log: logrus.WithField("module", "journal"),
	}, nil
}

// OnEvents stores the events of an operation at once
func (j *Journal) OnEvents(evs []*types.Event) error {
	if len(evs) == 0 {
		return nil
	}
	entries := make([]*Entry, 0, len(evs))
	for _, ev := range evs {
		entries = append(entries, newEntry(ev))
	}
	err := j.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
	if err != nil {
		return errors.WithStack(err)
	}
	j.log.WithField("count", len(entries)).Debug("events journaled")
	return nil
}

// List returns the entries matching the query in the order they were stored
func (j *Journal) List(q *Query) ([]*Entry, error) {
	tx := j.db.Model(&Entry{})
	if q.Name != "" {
		tx = tx.Where("name = ?", q.Name)
	}
	if q.Manager != common.ZeroAddr {
		tx = tx.Where("manager = ?", q.Manager.String())
	}
	if q.CropID != nil {
		tx = tx.Where("crop_id = ?", *q.CropID)
	}
	if q.Account != common.ZeroAddr {
		tx = tx.Where("account = ? OR \"to\" = ?", q.Account.String(), q.Account.String())
	}
	limit := q.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	var entries []*Entry
	if err := tx.Order("id").Offset(q.Offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return entries, nil
}

// Close closes the database
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return sqlDB.Close()
}
