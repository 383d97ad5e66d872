// Package history keeps a log of resolved webjumps in a sqlite database.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type HistoryManager struct {
	db *gorm.DB
}

// JumpEntry is one resolved invocation.
type JumpEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Input    string
	Webjump  string `gorm:"index"`
	Argument string
	URL      string
}

// WebjumpCount is the number of recorded jumps for one webjump.
type WebjumpCount struct {
	Webjump string
	Count   int64
}

func NewHistoryManager(dbFilePath string) (*HistoryManager, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" would get its own database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&JumpEntry{}); err != nil {
		return nil, err
	}

	return &HistoryManager{
		db: db,
	}, nil
}

// Close closes the database connection.
func (historyManager *HistoryManager) Close() error {
	sqlDB, err := historyManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores a resolved jump. webjump is empty for passthrough input.
func (historyManager *HistoryManager) Record(input, webjump, argument, url string) (*JumpEntry, error) {
	entry := JumpEntry{
		Input:    input,
		Webjump:  webjump,
		Argument: argument,
		URL:      url,
	}

	result := historyManager.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// GetRecentEntries returns up to limit of the newest entries, oldest first.
// An empty webjump matches every entry.
func (historyManager *HistoryManager) GetRecentEntries(webjump string, limit int) ([]JumpEntry, error) {
	var entries []JumpEntry
	var db = historyManager.db
	if webjump != "" {
		db = db.Where("webjump = ?", webjump)
	}
	result := db.Order("created_at desc, id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return lo.Reverse(entries), nil
}

// GetAllEntries returns every entry, newest first.
func (historyManager *HistoryManager) GetAllEntries() ([]JumpEntry, error) {
	var entries []JumpEntry
	result := historyManager.db.Order("created_at desc, id desc").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (historyManager *HistoryManager) DeleteEntry(id uint) error {
	result := historyManager.db.Delete(&JumpEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

func (historyManager *HistoryManager) ResetHistory() error {
	result := historyManager.db.Exec("DELETE FROM jump_entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// RecentArguments returns the distinct non-empty arguments given to webjump
// that start with prefix, most recently used first.
func (historyManager *HistoryManager) RecentArguments(webjump, prefix string, limit int) ([]string, error) {
	var arguments []string
	result := historyManager.db.Model(&JumpEntry{}).
		Select("argument").
		Where("webjump = ? AND argument <> '' AND argument LIKE ? ESCAPE '\\'", webjump, escapeLike(prefix)+"%").
		Group("argument").
		Order("MAX(id) desc").
		Limit(limit).
		Pluck("argument", &arguments)
	if result.Error != nil {
		return nil, result.Error
	}

	return arguments, nil
}

// TopWebjumps counts entries per webjump, most used first. Passthrough
// entries are not counted.
func (historyManager *HistoryManager) TopWebjumps(limit int) ([]WebjumpCount, error) {
	var counts []WebjumpCount
	result := historyManager.db.Model(&JumpEntry{}).
		Select("webjump, COUNT(*) AS count").
		Where("webjump <> ''").
		Group("webjump").
		Order("count desc, webjump").
		Limit(limit).
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
