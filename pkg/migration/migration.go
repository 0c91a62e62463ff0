// Package migration tracks schema migrations in a batch table, the same
// way the velora CLI exposes them:
//
//	velora migrate             // run all pending
//	velora migrate:rollback    // reverse the most recent batch
//	velora migrate:status      // show what ran and when
//
// Migrations self-register from database/migrations:
//
//	func init() {
//	    migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
//	}
//
//	type CreateUsersTable struct{}
//	func (m *CreateUsersTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.User{}) }
//	func (m *CreateUsersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("users") }
package migration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/velora-shop/velora/pkg/logger"
	"gorm.io/gorm"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record is one row of the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "velora_migrations" }

// entry pairs a registered migration with its sortable name.
type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration under name. Names carry a timestamp prefix so
// lexical order is chronological order.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Runner applies and reverses registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

// New creates a Runner backed by the provided gorm.DB.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

// applied returns the names already recorded in the tracking table.
func (r *Runner) applied() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	done := make(map[string]record, len(rows))
	for _, row := range rows {
		done[row.Name] = row
	}
	return done, nil
}

// pending returns registered migrations not yet applied, oldest first.
func (r *Runner) pending() ([]entry, error) {
	done, err := r.applied()
	if err != nil {
		return nil, err
	}

	var todo []entry
	for _, e := range registry {
		if _, ok := done[e.name]; !ok {
			todo = append(todo, e)
		}
	}
	sort.Slice(todo, func(i, j int) bool { return todo[i].name < todo[j].name })
	return todo, nil
}

func (r *Runner) latestBatch() int {
	var row struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&row)
	return row.Max
}

// Run executes every pending migration as one new batch.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	todo, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(todo) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.latestBatch() + 1

	for _, e := range todo {
		logger.Info("migration: running", "name", e.name)
		fmt.Printf("  Migrating: %s\n", e.name)

		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}

		fmt.Printf("  Migrated:  %s\n", e.name)
	}

	logger.Info("migration: done", "ran", len(todo), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch := r.latestBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).
		Order("id desc").
		Find(&rows).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.m
	}

	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return fmt.Errorf("migration: cannot rollback %s — not registered", row.Name)
		}

		logger.Info("migration: rolling back", "name", row.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return err
		}

		fmt.Printf("  Rolled back: %s\n", row.Name)
	}

	return nil
}

// Status prints every registered migration with its batch, or "pending".
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	done, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range registry {
		if row, ok := done[e.name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", e.name, "ran", row.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", e.name, "pending")
		}
	}
	return nil
}
