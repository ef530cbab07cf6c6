package quran

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite chapter cache. One row per chapter plus one row per verse.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the cache database at path and ensures the
// schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open chapter store: %w", err)
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS chapters (
		number            INTEGER PRIMARY KEY,
		name_arabic       TEXT NOT NULL,
		name_latin        TEXT NOT NULL,
		name_translation  TEXT NOT NULL,
		verse_count       INTEGER NOT NULL,
		fetched_at        INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS verses (
		chapter          INTEGER NOT NULL REFERENCES chapters(number) ON DELETE CASCADE,
		position         INTEGER NOT NULL,
		arabic           TEXT NOT NULL,
		transliteration  TEXT NOT NULL,
		translation      TEXT NOT NULL,
		commentary       TEXT NOT NULL,
		PRIMARY KEY (chapter, position)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutChapter stores a chapter, replacing any previous copy.
func (s *Store) PutChapter(ctx context.Context, ch *Chapter) error {
	if err := ch.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM verses WHERE chapter = ?`, ch.Number); err != nil {
		return fmt.Errorf("clear verses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO chapters
		(number, name_arabic, name_latin, name_translation, verse_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ch.Number, ch.Name.Arabic, ch.Name.Transliteration, ch.Name.Translation,
		len(ch.Verses), time.Now().Unix()); err != nil {
		return fmt.Errorf("store chapter %d: %w", ch.Number, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO verses
		(chapter, position, arabic, transliteration, translation, commentary)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare verses: %w", err)
	}
	defer stmt.Close()

	for _, v := range ch.Verses {
		if _, err := stmt.ExecContext(ctx, ch.Number, v.Position,
			v.Arabic, v.Transliteration, v.Translation, v.Commentary); err != nil {
			return fmt.Errorf("store verse %d:%d: %w", ch.Number, v.Position, err)
		}
	}

	return tx.Commit()
}

// GetChapter loads a cached chapter. Returns (nil, nil) on cache miss.
func (s *Store) GetChapter(ctx context.Context, number int) (*Chapter, error) {
	ch := &Chapter{Number: number}
	var verseCount int
	err := s.db.QueryRowContext(ctx, `SELECT name_arabic, name_latin, name_translation, verse_count
		FROM chapters WHERE number = ?`, number).
		Scan(&ch.Name.Arabic, &ch.Name.Transliteration, &ch.Name.Translation, &verseCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chapter %d: %w", number, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT position, arabic, transliteration, translation, commentary
		FROM verses WHERE chapter = ? ORDER BY position`, number)
	if err != nil {
		return nil, fmt.Errorf("load verses %d: %w", number, err)
	}
	defer rows.Close()

	ch.Verses = make([]Verse, 0, verseCount)
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.Position, &v.Arabic, &v.Transliteration, &v.Translation, &v.Commentary); err != nil {
			return nil, fmt.Errorf("scan verse: %w", err)
		}
		ch.Verses = append(ch.Verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read verses %d: %w", number, err)
	}
	if err := ch.Validate(); err != nil {
		return nil, fmt.Errorf("cached chapter %d corrupt: %w", number, err)
	}
	return ch, nil
}

// ChapterIndex lists cached chapters in number order.
func (s *Store) ChapterIndex(ctx context.Context) ([]ChapterInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT number, name_arabic, name_latin, name_translation, verse_count
		FROM chapters ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var infos []ChapterInfo
	for rows.Next() {
		var info ChapterInfo
		if err := rows.Scan(&info.Number, &info.Name.Arabic, &info.Name.Transliteration,
			&info.Name.Translation, &info.VerseCount); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
