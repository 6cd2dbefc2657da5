package upsert

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"realty_portal/internal/media"
)

// ErrNoMediaStore is returned when uploads arrive but no store is configured.
var ErrNoMediaStore = errors.New("no media store configured")

// Parent is a top-level record owning child collections.
type Parent interface {
	PrimaryKey() uint
}

// Engine runs parent+children writes against one database.
type Engine struct {
	db    *gorm.DB
	media media.Store
}

func NewEngine(db *gorm.DB, store media.Store) *Engine {
	return &Engine{db: db, media: store}
}

// Create inserts the parent from its own fields, then materializes the image
// relation (uploads, then URLs), then every other relation.
func (e *Engine) Create(ctx context.Context, parent Parent, relations ...Relation) error {
	s := e.newSession(ctx)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(parent).Error; err != nil {
			return fmt.Errorf("create parent: %w", err)
		}
		for _, r := range ordered(relations) {
			if err := r.insert(tx, s, parent.PrimaryKey()); err != nil {
				return fmt.Errorf("create %s: %w", r.Name(), err)
			}
		}
		return nil
	})
	s.finish(err)
	return err
}

// Update saves the patched parent and fully replaces every supplied relation.
// Relations without new children keep their existing rows.
func (e *Engine) Update(ctx context.Context, parent Parent, relations ...Relation) error {
	s := e.newSession(ctx)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(parent).Error; err != nil {
			return fmt.Errorf("update parent: %w", err)
		}
		id := parent.PrimaryKey()
		for _, r := range ordered(relations) {
			if !r.Supplied() {
				continue
			}
			released, err := r.clear(tx, id)
			if err != nil {
				return fmt.Errorf("clear %s: %w", r.Name(), err)
			}
			s.released = append(s.released, released...)
			if err := r.insert(tx, s, id); err != nil {
				return fmt.Errorf("replace %s: %w", r.Name(), err)
			}
		}
		return nil
	})
	s.finish(err)
	return err
}

// Delete removes every child row of the given relations and then the parent.
func (e *Engine) Delete(ctx context.Context, parent Parent, relations ...Relation) error {
	s := e.newSession(ctx)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id := parent.PrimaryKey()
		for _, r := range relations {
			released, err := r.clear(tx, id)
			if err != nil {
				return fmt.Errorf("delete %s: %w", r.Name(), err)
			}
			s.released = append(s.released, released...)
		}
		res := tx.Delete(parent)
		if res.Error != nil {
			return fmt.Errorf("delete parent: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	s.finish(err)
	return err
}

// ordered puts image relations first, keeping the caller's order otherwise.
func ordered(relations []Relation) []Relation {
	out := append([]Relation(nil), relations...)
	sort.SliceStable(out, func(i, j int) bool {
		_, a := out[i].(*ImageRelation)
		_, b := out[j].(*ImageRelation)
		return a && !b
	})
	return out
}

// session tracks media written and released during one operation so the
// store can be reconciled with the transaction outcome.
type session struct {
	ctx      context.Context
	media    media.Store
	written  []string
	released []string
}

func (e *Engine) newSession(ctx context.Context) *session {
	return &session{ctx: ctx, media: e.media}
}

func (s *session) save(dir string, u Uploaded) (string, error) {
	if s.media == nil {
		return "", ErrNoMediaStore
	}
	p, err := s.media.Save(s.ctx, dir, u.Filename, u.ContentType, u.Data)
	if err != nil {
		return "", err
	}
	s.written = append(s.written, p)
	return p, nil
}

// finish drops files from a rolled back write, or files whose rows were
// removed by a committed one.
func (s *session) finish(err error) {
	stale := s.released
	if err != nil {
		stale = s.written
	}
	if s.media == nil {
		return
	}
	// The request context may already be cancelled; cleanup still has to run.
	ctx := context.WithoutCancel(s.ctx)
	for _, p := range stale {
		if rmErr := s.media.Remove(ctx, p); rmErr != nil {
			logrus.WithFields(logrus.Fields{
				"path":  p,
				"error": rmErr.Error(),
			}).Warn("Failed to remove media file")
		}
	}
}
